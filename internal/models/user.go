package models

// User owns every account, category and transaction in the ledger.
type User struct {
	Base
	Name             string `gorm:"not null" json:"name"`
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	Password         string `gorm:"not null" json:"-"`
	RefreshTokenHash string `gorm:"size:64" json:"-"`
}
