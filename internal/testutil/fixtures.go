package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"brewbooks/internal/models"
	"brewbooks/internal/money"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     "Barista",
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an active cash account with a zero starting balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, userID, models.AccountTypeCash, 0)
}

// CreateTestAccountWithBalance creates an active account of the given type.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, userID string, accountType models.AccountType, balance money.Amount) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:          userID,
		Name:            fmt.Sprintf("Account %d", nextID()),
		Type:            accountType,
		StartingBalance: balance,
		IsActive:        true,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, userID, fmt.Sprintf("Category %d", nextID()), categoryType)
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, userID, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a standalone transaction dated today. The
// transaction type follows the category type.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, account *models.Account, category *models.Category, amount money.Amount) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, account, category, amount, models.Today())
}

// CreateTestTransactionOn creates a standalone transaction on the given date.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID string, account *models.Account, category *models.Category, amount money.Amount, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		UserID:     userID,
		AccountID:  account.ID,
		CategoryID: category.ID,
		Type:       models.TransactionType(category.Type),
		Date:       models.DateOnly(date),
		Amount:     amount,
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestAttachment creates attachment metadata for a transaction.
func CreateTestAttachment(t *testing.T, db *gorm.DB, transactionID, path string) *models.Attachment {
	t.Helper()

	attachment := &models.Attachment{
		TransactionID: transactionID,
		Filename:      path,
		OriginalName:  "receipt.png",
		Path:          path,
		Size:          4,
		MimeType:      "image/png",
	}
	if err := db.Create(attachment).Error; err != nil {
		t.Fatalf("failed to create test attachment: %v", err)
	}
	return attachment
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// AmountPtr parses s and returns a pointer to the amount.
func AmountPtr(s string) *money.Amount {
	a := money.MustParse(s)
	return &a
}
