package testutil_test

import (
	"testing"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/money"
	"brewbooks/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)

	var count int64
	for _, table := range []string{"users", "accounts", "categories", "transactions", "attachments"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolation(t *testing.T) {
	first := testutil.SetupTestDB(t)
	second := testutil.SetupTestDB(t)

	testutil.CreateTestUser(t, first)

	var count int64
	if err := second.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected isolated databases, second has %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	account := testutil.CreateTestAccountWithBalance(t, db, user.ID, models.AccountTypeBank, money.MustParse("50.00"))
	if account.StartingBalance != 5000 {
		t.Errorf("expected starting balance 5000, got %d", account.StartingBalance)
	}

	category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	tx := testutil.CreateTestTransaction(t, db, user.ID, account, category, 1250)
	if tx.Type != models.TransactionTypeExpense {
		t.Errorf("expected expense, got %s", tx.Type)
	}
}

func TestAssertions(t *testing.T) {
	err := apperrors.Field("amount", "The amount field is required.")
	testutil.AssertAppError(t, err, "VALIDATION_FAILED")
	testutil.AssertFieldError(t, err, "amount")
	testutil.AssertNoError(t, nil)
}
