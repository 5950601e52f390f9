package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/validator"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. The (owner, name, type) triple must
// be unique and a parent must belong to the same owner.
func (s *categoryService) CreateCategory(userID string, input CategoryInput) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.ParentID != nil && *input.ParentID == "" {
		input.ParentID = nil
	}

	fields := validator.Fields(input)
	if !fields.Has("name") && !fields.Has("type") {
		if err := s.checkUnique(userID, input.Name, input.Type, "", fields); err != nil {
			return nil, err
		}
	}
	if input.ParentID != nil {
		if err := s.checkParent(userID, "", *input.ParentID, fields); err != nil {
			return nil, err
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID:   userID,
		Name:     input.Name,
		Type:     input.Type,
		ParentID: input.ParentID,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// ListCategories returns the user's categories, optionally of one type.
func (s *categoryService) ListCategories(userID string, categoryType *models.CategoryType) ([]models.Category, error) {
	query := s.db.Where("user_id = ?", userID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	categories := []models.Category{}
	if err := query.Order("type ASC").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category with its parent and children.
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	category, err := findOwned[models.Category](s.db, userID, categoryID, apperrors.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	if category.ParentID != nil {
		parent, err := findOwned[models.Category](s.db, userID, *category.ParentID, apperrors.ErrCategoryNotFound)
		if err == nil {
			category.Parent = parent
		} else if !errors.Is(err, apperrors.ErrCategoryNotFound) {
			return nil, err
		}
	}

	children := []models.Category{}
	if err := s.db.Where("user_id = ? AND parent_id = ?", userID, category.ID).
		Order("name ASC").Find(&children).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	category.Children = children

	return category, nil
}

// UpdateCategory merges the supplied fields and validates the result. The
// type cannot change while transactions reference the category.
func (s *categoryService) UpdateCategory(userID, categoryID string, fields CategoryUpdateFields) (*models.Category, error) {
	category, err := findOwned[models.Category](s.db, userID, categoryID, apperrors.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	merged := CategoryInput{
		Name:     category.Name,
		Type:     category.Type,
		ParentID: category.ParentID,
	}
	if fields.Name != nil {
		merged.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.Type != nil {
		merged.Type = *fields.Type
	}
	if fields.ParentID != nil {
		merged.ParentID = fields.ParentID
		if *fields.ParentID == "" {
			merged.ParentID = nil
		}
	}

	violations := validator.Fields(merged)
	if !violations.Has("name") && !violations.Has("type") {
		if err := s.checkUnique(userID, merged.Name, merged.Type, category.ID, violations); err != nil {
			return nil, err
		}
	}
	if merged.Type != category.Type && !violations.Has("type") {
		used, err := countWhere[models.Transaction](s.db, "category_id = ?", category.ID)
		if err != nil {
			return nil, err
		}
		if used > 0 {
			violations.Add("type", "The type cannot be changed while transactions use this category.")
		}
	}
	if merged.ParentID != nil {
		if err := s.checkParent(userID, category.ID, *merged.ParentID, violations); err != nil {
			return nil, err
		}
	}
	if err := violations.Err(); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":      merged.Name,
		"type":      merged.Type,
		"parent_id": merged.ParentID,
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetCategoryByID(userID, categoryID)
}

// DeleteCategory deletes a category that has no transactions and no children.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		category, err := findOwned[models.Category](tx, userID, categoryID, apperrors.ErrCategoryNotFound)
		if err != nil {
			return err
		}

		used, err := countWhere[models.Transaction](tx, "category_id = ?", category.ID)
		if err != nil {
			return err
		}
		if used > 0 {
			return apperrors.ErrCategoryHasTransactions
		}

		children, err := countWhere[models.Category](tx, "parent_id = ?", category.ID)
		if err != nil {
			return err
		}
		if children > 0 {
			return apperrors.ErrCategoryHasChildren
		}

		if err := tx.Delete(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// checkUnique records a name violation when another category of the owner
// already uses the (name, type) pair. exceptID excludes the row being updated.
func (s *categoryService) checkUnique(userID, name string, categoryType models.CategoryType, exceptID string, fields apperrors.FieldErrors) error {
	query := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, categoryType)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		fields.Add("name", "The name has already been taken.")
	}
	return nil
}

// checkParent records a parent_id violation when the parent is not owned by
// the user, is the category itself, or descends from it.
func (s *categoryService) checkParent(userID, categoryID, parentID string, fields apperrors.FieldErrors) error {
	const invalid = "The selected parent id is invalid."

	if categoryID != "" && parentID == categoryID {
		fields.Add("parent_id", "A category cannot be its own parent.")
		return nil
	}

	current := parentID
	for depth := 0; current != ""; depth++ {
		parent, err := findOwned[models.Category](s.db, userID, current, apperrors.ErrCategoryNotFound)
		if err != nil {
			if errors.Is(err, apperrors.ErrCategoryNotFound) {
				fields.Add("parent_id", invalid)
				return nil
			}
			return err
		}
		if categoryID == "" || parent.ParentID == nil || depth > 64 {
			return nil
		}
		if *parent.ParentID == categoryID {
			fields.Add("parent_id", "The parent category would create a cycle.")
			return nil
		}
		current = *parent.ParentID
	}
	return nil
}
