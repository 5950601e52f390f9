package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/storage"
	"brewbooks/internal/uuid"
	"brewbooks/internal/validator"
)

// transferService writes and removes the two legs of a transfer as one unit.
type transferService struct {
	db    *gorm.DB
	store storage.FileStore
}

// NewTransferService creates a new TransferServicer.
func NewTransferService(db *gorm.DB, store storage.FileStore) TransferServicer {
	return &transferService{db: db, store: store}
}

// CreateTransfer records an expense on the source account and a matching
// income on the destination account. Both legs share a fresh transfer group
// id and are committed together or not at all.
func (s *transferService) CreateTransfer(userID string, input TransferInput) (*TransferResult, error) {
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	date := models.Today()
	if input.Date != nil && *input.Date != "" {
		parsed, _ := models.ParseDate(*input.Date)
		date = models.DateOnly(parsed)
	}
	note := blankToNil(input.Note)
	groupID := uuid.New()

	var result *TransferResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		from, err := findOwned[models.Account](tx, userID, input.FromAccountID, apperrors.ErrTransferAccountsOwned)
		if err != nil {
			return err
		}
		to, err := findOwned[models.Account](tx, userID, input.ToAccountID, apperrors.ErrTransferAccountsOwned)
		if err != nil {
			return err
		}

		expenseCategory, err := transferCategory(tx, userID, models.CategoryTypeExpense)
		if err != nil {
			return err
		}
		incomeCategory, err := transferCategory(tx, userID, models.CategoryTypeIncome)
		if err != nil {
			return err
		}

		fromLeg := &models.Transaction{
			UserID:          userID,
			AccountID:       from.ID,
			CategoryID:      expenseCategory.ID,
			Type:            models.TransactionTypeExpense,
			Date:            date,
			Amount:          *input.Amount,
			Note:            note,
			Counterparty:    &to.Name,
			TransferGroupID: &groupID,
		}
		toLeg := &models.Transaction{
			UserID:          userID,
			AccountID:       to.ID,
			CategoryID:      incomeCategory.ID,
			Type:            models.TransactionTypeIncome,
			Date:            date,
			Amount:          *input.Amount,
			Note:            note,
			Counterparty:    &from.Name,
			TransferGroupID: &groupID,
		}

		if err := tx.Create(fromLeg).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Create(toLeg).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		fromLeg.Account, fromLeg.Category = from, expenseCategory
		toLeg.Account, toLeg.Category = to, incomeCategory
		result = &TransferResult{
			TransferGroupID: groupID,
			FromTransaction: fromLeg,
			ToTransaction:   toLeg,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteTransferGroup removes both legs of a transfer and their attachments.
func (s *transferService) DeleteTransferGroup(userID, transferGroupID string) error {
	var paths []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND transfer_group_id = ?", userID, transferGroupID).
			Pluck("id", &ids).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(ids) == 0 {
			return apperrors.ErrTransactionNotFound
		}

		var err error
		paths, err = deleteTransactionRows(tx, ids)
		return err
	})
	if err != nil {
		return err
	}

	removeFiles(s.store, paths)
	return nil
}

// transferCategory returns the owner's "Transfer" category of the given type,
// creating it as a system category on first use. The insert is a no-op when
// a concurrent request created the row first.
func transferCategory(tx *gorm.DB, userID string, categoryType models.CategoryType) (*models.Category, error) {
	find := func() (*models.Category, error) {
		var category models.Category
		err := tx.Where("user_id = ? AND name = ? AND type = ?", userID, models.TransferCategoryName, categoryType).
			First(&category).Error
		if err != nil {
			return nil, err
		}
		return &category, nil
	}

	category, err := find()
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	created := &models.Category{
		UserID:   userID,
		Name:     models.TransferCategoryName,
		Type:     categoryType,
		IsSystem: true,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(created).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	category, err = find()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}
