package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// TransferCategoryName names the per-type categories that transfer legs
// are filed under.
const TransferCategoryName = "Transfer"

// Category classifies transactions of one type. Parent and Children are
// filled by explicit lookups, never by association preloading.
type Category struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;uniqueIndex:idx_categories_owner_name_type" json:"user_id"`
	Name     string       `gorm:"size:100;not null;uniqueIndex:idx_categories_owner_name_type" json:"name"`
	Type     CategoryType `gorm:"size:20;not null;uniqueIndex:idx_categories_owner_name_type" json:"type"`
	ParentID *string      `gorm:"type:uuid;index" json:"parent_id"`
	IsSystem bool         `gorm:"not null;default:false" json:"is_system"`

	Parent   *Category  `gorm:"-" json:"parent,omitempty"`
	Children []Category `gorm:"-" json:"children,omitempty"`
}
