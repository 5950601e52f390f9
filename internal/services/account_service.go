package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/money"
	"brewbooks/internal/validator"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new account for a user. Accounts start active
// unless the input says otherwise.
func (s *accountService) CreateAccount(userID string, input AccountInput) (*models.Account, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	account := &models.Account{
		UserID:          userID,
		Name:            input.Name,
		Type:            input.Type,
		StartingBalance: *input.StartingBalance,
		IsActive:        true,
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	balance := account.StartingBalance
	account.CurrentBalance = &balance
	return account, nil
}

// ListAccounts returns the user's accounts with their current balances.
func (s *accountService) ListAccounts(userID string, filter AccountFilter) ([]models.Account, error) {
	query := s.db.Where("user_id = ?", userID)
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(search))
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	accounts := []models.Account{}
	if err := query.Order("name ASC").Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.attachBalances(userID, accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccountByID retrieves an account by ID for a specific user
func (s *accountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	account, err := findOwned[models.Account](s.db, userID, accountID, apperrors.ErrAccountNotFound)
	if err != nil {
		return nil, err
	}

	accounts := []models.Account{*account}
	if err := s.attachBalances(userID, accounts); err != nil {
		return nil, err
	}
	return &accounts[0], nil
}

// UpdateAccount merges the supplied fields onto the stored account and
// validates the result like a new account.
func (s *accountService) UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error) {
	account, err := findOwned[models.Account](s.db, userID, accountID, apperrors.ErrAccountNotFound)
	if err != nil {
		return nil, err
	}

	merged := AccountInput{
		Name:            account.Name,
		Type:            account.Type,
		StartingBalance: &account.StartingBalance,
		IsActive:        &account.IsActive,
	}
	if fields.Name != nil {
		merged.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.Type != nil {
		merged.Type = *fields.Type
	}
	if fields.StartingBalance != nil {
		merged.StartingBalance = fields.StartingBalance
	}
	if fields.IsActive != nil {
		merged.IsActive = fields.IsActive
	}
	if err := validator.Struct(merged); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":             merged.Name,
		"type":             merged.Type,
		"starting_balance": *merged.StartingBalance,
		"is_active":        *merged.IsActive,
	}
	if err := s.db.Model(account).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetAccountByID(userID, accountID)
}

// DeleteAccount removes an account that no transaction references.
func (s *accountService) DeleteAccount(userID, accountID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		account, err := findOwned[models.Account](tx, userID, accountID, apperrors.ErrAccountNotFound)
		if err != nil {
			return err
		}

		count, err := countWhere[models.Transaction](tx, "account_id = ?", account.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrAccountHasTransactions
		}

		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

type accountTotals struct {
	AccountID string
	Income    money.Amount
	Expense   money.Amount
}

// attachBalances sets CurrentBalance on every account from the starting
// balance and the signed sum of its transactions.
func (s *accountService) attachBalances(userID string, accounts []models.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	ids := make([]string, len(accounts))
	for i := range accounts {
		ids[i] = accounts[i].ID
	}

	var totals []accountTotals
	err := s.db.Model(&models.Transaction{}).
		Select(`account_id,
			CAST(COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS BIGINT) AS income,
			CAST(COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS BIGINT) AS expense`,
			models.TransactionTypeIncome, models.TransactionTypeExpense).
		Where("user_id = ? AND account_id IN ?", userID, ids).
		Group("account_id").
		Scan(&totals).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byAccount := make(map[string]accountTotals, len(totals))
	for _, t := range totals {
		byAccount[t.AccountID] = t
	}
	for i := range accounts {
		t := byAccount[accounts[i].ID]
		balance := accounts[i].StartingBalance + t.Income - t.Expense
		accounts[i].CurrentBalance = &balance
	}
	return nil
}
