package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/money"
	"brewbooks/internal/pagination"
	"brewbooks/internal/storage"
	"brewbooks/internal/uuid"
	"brewbooks/internal/validator"
)

// transactionService handles income/expense entries and ledger queries.
type transactionService struct {
	db        *gorm.DB
	store     storage.FileStore
	transfers TransferServicer
}

// NewTransactionService creates a new TransactionServicer. Deleting a
// transfer leg is delegated to transfers.
func NewTransactionService(db *gorm.DB, store storage.FileStore, transfers TransferServicer) TransactionServicer {
	return &transactionService{db: db, store: store, transfers: transfers}
}

// CreateTransaction records a single income or expense entry.
func (s *transactionService) CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error) {
	fields := validator.Fields(input)
	if err := s.checkReferences(userID, input, fields); err != nil {
		return nil, err
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	transaction := newTransaction(userID, input)
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransactionByID(userID, transaction.ID)
}

// GetTransactionByID retrieves a transaction with its account, category,
// attachments and, for transfer legs, the other leg.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	transaction, err := findOwned[models.Transaction](s.db, userID, transactionID, apperrors.ErrTransactionNotFound)
	if err != nil {
		return nil, err
	}

	list := []models.Transaction{*transaction}
	if err := hydrateReferences(s.db, userID, list); err != nil {
		return nil, err
	}
	transaction = &list[0]

	attachments := []models.Attachment{}
	if err := s.db.Where("transaction_id = ?", transaction.ID).
		Order("created_at ASC").Find(&attachments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	transaction.Attachments = attachments

	if transaction.IsTransferLeg() {
		var partner models.Transaction
		err := s.db.Where("user_id = ? AND transfer_group_id = ? AND id <> ?",
			userID, *transaction.TransferGroupID, transaction.ID).
			Limit(1).Find(&partner).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if partner.ID != "" {
			transaction.TransferPartner = &partner
		}
	}

	return transaction, nil
}

// UpdateTransaction applies the supplied fields to a standalone transaction.
// Transfer legs are rejected without being modified.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := findOwned[models.Transaction](s.db, userID, transactionID, apperrors.ErrTransactionNotFound)
	if err != nil {
		return nil, err
	}
	if transaction.IsTransferLeg() {
		return nil, apperrors.ErrTransferNotEditable
	}

	amount := transaction.Amount
	merged := TransactionInput{
		AccountID:    transaction.AccountID,
		CategoryID:   transaction.CategoryID,
		Type:         transaction.Type,
		Date:         transaction.Date.Format(models.DateLayout),
		Amount:       &amount,
		Note:         transaction.Note,
		Counterparty: transaction.Counterparty,
	}
	if fields.AccountID != nil {
		merged.AccountID = *fields.AccountID
	}
	if fields.CategoryID != nil {
		merged.CategoryID = *fields.CategoryID
	}
	if fields.Type != nil {
		merged.Type = *fields.Type
	}
	if fields.Date != nil {
		merged.Date = *fields.Date
	}
	if fields.Amount != nil {
		merged.Amount = fields.Amount
	}
	if fields.Note != nil {
		merged.Note = fields.Note
	}
	if fields.Counterparty != nil {
		merged.Counterparty = fields.Counterparty
	}

	violations := validator.Fields(merged)
	if err := s.checkReferences(userID, merged, violations); err != nil {
		return nil, err
	}
	if err := violations.Err(); err != nil {
		return nil, err
	}

	updated := newTransaction(userID, merged)
	updates := map[string]interface{}{
		"account_id":   updated.AccountID,
		"category_id":  updated.CategoryID,
		"type":         updated.Type,
		"date":         updated.Date,
		"amount":       updated.Amount,
		"note":         updated.Note,
		"counterparty": updated.Counterparty,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction removes a transaction and its attachments. Deleting
// either leg of a transfer removes the whole pair.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := findOwned[models.Transaction](s.db, userID, transactionID, apperrors.ErrTransactionNotFound)
	if err != nil {
		return err
	}
	if transaction.IsTransferLeg() {
		return s.transfers.DeleteTransferGroup(userID, *transaction.TransferGroupID)
	}

	var paths []string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		paths, txErr = deleteTransactionRows(tx, []string{transaction.ID})
		return txErr
	})
	if err != nil {
		return err
	}

	removeFiles(s.store, paths)
	return nil
}

// ListTransactions returns one page of the user's filtered transactions.
func (s *transactionService) ListTransactions(userID string, filter TransactionFilter, sort TransactionSort, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	var total int64
	if err := s.filtered(userID, filter).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transactions := []models.Transaction{}
	if err := applySort(s.filtered(userID, filter), sort).
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := hydrateReferences(s.db, userID, transactions); err != nil {
		return nil, err
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PerPage, total)
	return &result, nil
}

// ListAllTransactions returns every matching transaction without paging.
func (s *transactionService) ListAllTransactions(userID string, filter TransactionFilter, sort TransactionSort) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := applySort(s.filtered(userID, filter), sort).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := hydrateReferences(s.db, userID, transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

type typeTotals struct {
	Type  models.TransactionType
	Count int64
	Total money.Amount
}

// ComputeStatistics sums income and expense over the filtered transactions.
func (s *transactionService) ComputeStatistics(userID string, filter StatisticsFilter) (*Statistics, error) {
	if filter.FromDate != nil && filter.ToDate != nil && filter.ToDate.Before(*filter.FromDate) {
		return nil, apperrors.Field("to_date", "The to date field must be a date after or equal to from date.")
	}
	if filter.AccountID != nil {
		if _, err := findOwned[models.Account](s.db, userID, *filter.AccountID, apperrors.ErrAccountNotFound); err != nil {
			return nil, err
		}
	}
	if filter.CategoryID != nil {
		if _, err := findOwned[models.Category](s.db, userID, *filter.CategoryID, apperrors.ErrCategoryNotFound); err != nil {
			return nil, err
		}
	}

	query := s.filtered(userID, TransactionFilter{
		AccountID:  filter.AccountID,
		CategoryID: filter.CategoryID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	})

	var rows []typeTotals
	if err := query.
		Select("type, COUNT(*) AS count, CAST(COALESCE(SUM(amount), 0) AS BIGINT) AS total").
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats := &Statistics{}
	for _, r := range rows {
		switch r.Type {
		case models.TransactionTypeIncome:
			stats.TotalIncome += r.Total
			stats.IncomeCount += r.Count
		case models.TransactionTypeExpense:
			stats.TotalExpense += r.Total
			stats.ExpenseCount += r.Count
		}
		stats.TransactionCount += r.Count
	}
	stats.NetAmount = stats.TotalIncome - stats.TotalExpense

	return stats, nil
}

// filtered builds a fresh owner-scoped query with filter applied.
func (s *transactionService) filtered(userID string, f TransactionFilter) *gorm.DB {
	q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if !validIDFilter(f.AccountID) || !validIDFilter(f.CategoryID) {
		return q.Where("1 = 0")
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", models.DateOnly(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", models.DateOnly(*f.ToDate))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := likePattern(search)
		q = q.Where(`(LOWER(note) LIKE ? ESCAPE '\' OR LOWER(counterparty) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	return q
}

// validIDFilter reports whether an optional id filter can match a row. A
// malformed id matches nothing instead of reaching a uuid column.
func validIDFilter(id *string) bool {
	return id == nil || uuid.IsValid(*id)
}

var sortColumns = map[string]string{
	SortByDate:      "date",
	SortByAmount:    "amount",
	SortByCreatedAt: "created_at",
}

// applySort orders by the requested column with id as the tiebreaker.
func applySort(q *gorm.DB, sort TransactionSort) *gorm.DB {
	column, ok := sortColumns[sort.By]
	if !ok {
		column = "date"
	}
	dir := "DESC"
	if strings.EqualFold(sort.Order, "asc") {
		dir = "ASC"
	}
	return q.Order(column + " " + dir).Order("id " + dir)
}

// checkReferences records account_id and category_id violations for
// references the user does not own, and a category_id violation when the
// category type differs from the transaction type.
func (s *transactionService) checkReferences(userID string, input TransactionInput, fields apperrors.FieldErrors) error {
	if input.AccountID != "" && !fields.Has("account_id") {
		owned, err := ownsRow[models.Account](s.db, userID, input.AccountID)
		if err != nil {
			return err
		}
		if !owned {
			fields.Add("account_id", "The selected account id is invalid.")
		}
	}

	if input.CategoryID != "" && !fields.Has("category_id") {
		category, err := findOwned[models.Category](s.db, userID, input.CategoryID, apperrors.ErrCategoryNotFound)
		switch {
		case err == nil:
			if !fields.Has("type") && string(category.Type) != string(input.Type) {
				fields.Add("category_id", "The selected category does not match the transaction type.")
			}
		case errors.Is(err, apperrors.ErrCategoryNotFound):
			fields.Add("category_id", "The selected category id is invalid.")
		default:
			return err
		}
	}
	return nil
}

// newTransaction converts validated input to a row.
func newTransaction(userID string, input TransactionInput) *models.Transaction {
	date, _ := models.ParseDate(input.Date)
	return &models.Transaction{
		UserID:       userID,
		AccountID:    input.AccountID,
		CategoryID:   input.CategoryID,
		Type:         input.Type,
		Date:         models.DateOnly(date),
		Amount:       *input.Amount,
		Note:         blankToNil(input.Note),
		Counterparty: blankToNil(input.Counterparty),
	}
}

// hydrateReferences fills Account and Category on each transaction with
// two batched lookups.
func hydrateReferences(db *gorm.DB, userID string, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	accountIDs := make([]string, 0, len(transactions))
	categoryIDs := make([]string, 0, len(transactions))
	for i := range transactions {
		accountIDs = append(accountIDs, transactions[i].AccountID)
		categoryIDs = append(categoryIDs, transactions[i].CategoryID)
	}

	var accounts []models.Account
	if err := db.Where("user_id = ? AND id IN ?", userID, accountIDs).Find(&accounts).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var categories []models.Category
	if err := db.Where("user_id = ? AND id IN ?", userID, categoryIDs).Find(&categories).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	accountByID := make(map[string]*models.Account, len(accounts))
	for i := range accounts {
		accountByID[accounts[i].ID] = &accounts[i]
	}
	categoryByID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		categoryByID[categories[i].ID] = &categories[i]
	}

	for i := range transactions {
		transactions[i].Account = accountByID[transactions[i].AccountID]
		transactions[i].Category = categoryByID[transactions[i].CategoryID]
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
