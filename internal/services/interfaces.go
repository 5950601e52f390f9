package services

import (
	"io"
	"time"

	"brewbooks/internal/models"
	"brewbooks/internal/money"
	"brewbooks/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// AccountInput is the payload for creating an account.
type AccountInput struct {
	Name            string             `json:"name" validate:"required,max=100"`
	Type            models.AccountType `json:"type" validate:"required,account_type"`
	StartingBalance *money.Amount      `json:"starting_balance" validate:"required,gte=0,lte=99999999999999"`
	IsActive        *bool              `json:"is_active"`
}

// AccountUpdateFields holds the fields an update may change. Nil fields keep
// their stored value.
type AccountUpdateFields struct {
	Name            *string             `json:"name"`
	Type            *models.AccountType `json:"type"`
	StartingBalance *money.Amount       `json:"starting_balance"`
	IsActive        *bool               `json:"is_active"`
}

// AccountFilter narrows an account listing.
type AccountFilter struct {
	Search   string
	IsActive *bool
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID string, input AccountInput) (*models.Account, error)
	ListAccounts(userID string, filter AccountFilter) ([]models.Account, error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(userID, accountID string) error
}

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name     string              `json:"name" validate:"required,max=100"`
	Type     models.CategoryType `json:"type" validate:"required,category_type"`
	ParentID *string             `json:"parent_id"`
}

// CategoryUpdateFields holds the fields a category update may change. An
// empty ParentID detaches the category from its parent.
type CategoryUpdateFields struct {
	Name     *string              `json:"name"`
	Type     *models.CategoryType `json:"type"`
	ParentID *string              `json:"parent_id"`
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID string, input CategoryInput) (*models.Category, error)
	ListCategories(userID string, categoryType *models.CategoryType) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID string, fields CategoryUpdateFields) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionInput is the payload for creating an income or expense entry.
type TransactionInput struct {
	AccountID    string                 `json:"account_id" validate:"required"`
	CategoryID   string                 `json:"category_id" validate:"required"`
	Type         models.TransactionType `json:"type" validate:"required,transaction_type"`
	Date         string                 `json:"date" validate:"required,date_only,not_future"`
	Amount       *money.Amount          `json:"amount" validate:"required,gt=0,lte=99999999999999"`
	Note         *string                `json:"note" validate:"omitempty,max=1000"`
	Counterparty *string                `json:"counterparty" validate:"omitempty,max=255"`
}

// TransactionUpdateFields holds the fields a transaction update may change.
type TransactionUpdateFields struct {
	AccountID    *string                 `json:"account_id"`
	CategoryID   *string                 `json:"category_id"`
	Type         *models.TransactionType `json:"type"`
	Date         *string                 `json:"date"`
	Amount       *money.Amount           `json:"amount"`
	Note         *string                 `json:"note"`
	Counterparty *string                 `json:"counterparty"`
}

// TransactionFilter holds optional filter parameters for listing transactions.
// All set filters are combined with AND.
type TransactionFilter struct {
	AccountID  *string
	CategoryID *string
	Type       *models.TransactionType
	FromDate   *time.Time
	ToDate     *time.Time
	Search     string
	MinAmount  *money.Amount
	MaxAmount  *money.Amount
}

// Sort keys accepted by transaction listings.
const (
	SortByDate      = "date"
	SortByAmount    = "amount"
	SortByCreatedAt = "created_at"
)

// TransactionSort selects the listing order. Unknown keys fall back to
// date descending.
type TransactionSort struct {
	By    string
	Order string
}

// StatisticsFilter narrows the transactions that statistics are computed over.
type StatisticsFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	AccountID  *string
	CategoryID *string
}

// Statistics aggregates amounts and counts over a filtered transaction set.
type Statistics struct {
	TotalIncome      money.Amount `json:"total_income"`
	TotalExpense     money.Amount `json:"total_expense"`
	NetAmount        money.Amount `json:"net_amount"`
	TransactionCount int64        `json:"transaction_count"`
	IncomeCount      int64        `json:"income_count"`
	ExpenseCount     int64        `json:"expense_count"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input TransactionInput) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	ListTransactions(userID string, filter TransactionFilter, sort TransactionSort, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	ListAllTransactions(userID string, filter TransactionFilter, sort TransactionSort) ([]models.Transaction, error)
	ComputeStatistics(userID string, filter StatisticsFilter) (*Statistics, error)
}

// TransferInput is the payload for moving money between two accounts.
// Date defaults to today.
type TransferInput struct {
	FromAccountID string        `json:"from_account_id" validate:"required,nefield=ToAccountID"`
	ToAccountID   string        `json:"to_account_id" validate:"required"`
	Amount        *money.Amount `json:"amount" validate:"required,gt=0,lte=99999999999999"`
	Date          *string       `json:"date" validate:"omitempty,date_only,not_future"`
	Note          *string       `json:"note" validate:"omitempty,max=1000"`
}

// TransferResult holds both legs of a created transfer.
type TransferResult struct {
	TransferGroupID string              `json:"transfer_group_id"`
	FromTransaction *models.Transaction `json:"from_transaction"`
	ToTransaction   *models.Transaction `json:"to_transaction"`
}

// TransferServicer defines the contract for paired transfer writes.
type TransferServicer interface {
	CreateTransfer(userID string, input TransferInput) (*TransferResult, error)
	DeleteTransferGroup(userID, transferGroupID string) error
}

// AttachmentServicer defines the contract for transaction attachments.
type AttachmentServicer interface {
	AddAttachment(userID, transactionID, originalName string, r io.Reader) (*models.Attachment, error)
	ListAttachments(userID, transactionID string) ([]models.Attachment, error)
	OpenAttachment(userID, attachmentID string) (*models.Attachment, io.ReadCloser, error)
	DeleteAttachment(userID, attachmentID string) error
}
