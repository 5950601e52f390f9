package services

import (
	"testing"

	"brewbooks/internal/models"
	"brewbooks/internal/money"
	"brewbooks/internal/testutil"
)

func boolPtr(b bool) *bool { return &b }

func TestCreateAccount(t *testing.T) {
	t.Run("success_defaults_active", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, AccountInput{
			Name:            "Till",
			Type:            models.AccountTypeCash,
			StartingBalance: testutil.AmountPtr("1000.50"),
		})
		testutil.AssertNoError(t, err)

		if account.ID == "" {
			t.Fatal("expected an account ID")
		}
		if !account.IsActive {
			t.Error("expected new account to be active")
		}
		if account.StartingBalance.String() != "1000.50" {
			t.Errorf("expected starting balance 1000.50, got %s", account.StartingBalance)
		}
		if account.CurrentBalance == nil || *account.CurrentBalance != account.StartingBalance {
			t.Errorf("expected current balance to equal starting balance, got %v", account.CurrentBalance)
		}
	})

	t.Run("explicit_inactive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)

		account, err := svc.CreateAccount(user.ID, AccountInput{
			Name:            "Old bank",
			Type:            models.AccountTypeBank,
			StartingBalance: testutil.AmountPtr("0"),
			IsActive:        boolPtr(false),
		})
		testutil.AssertNoError(t, err)

		var stored models.Account
		testutil.AssertNoError(t, db.First(&stored, "id = ?", account.ID).Error)
		if stored.IsActive {
			t.Error("expected stored account to be inactive")
		}
	})

	tests := []struct {
		name  string
		input AccountInput
		field string
	}{
		{"missing_name", AccountInput{Type: models.AccountTypeCash, StartingBalance: testutil.AmountPtr("1")}, "name"},
		{"invalid_type", AccountInput{Name: "X", Type: "credit_card", StartingBalance: testutil.AmountPtr("1")}, "type"},
		{"missing_balance", AccountInput{Name: "X", Type: models.AccountTypeCash}, "starting_balance"},
		{"negative_balance", AccountInput{Name: "X", Type: models.AccountTypeCash, StartingBalance: testutil.AmountPtr("-0.01")}, "starting_balance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			svc := NewAccountService(db)
			user := testutil.CreateTestUser(t, db)

			_, err := svc.CreateAccount(user.ID, tt.input)
			testutil.AssertFieldError(t, err, tt.field)

			var count int64
			db.Model(&models.Account{}).Count(&count)
			if count != 0 {
				t.Errorf("expected no account persisted, got %d", count)
			}
		})
	}
}

func TestListAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAccountService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	_, err := svc.CreateAccount(user.ID, AccountInput{Name: "Main Bank", Type: models.AccountTypeBank, StartingBalance: testutil.AmountPtr("10")})
	testutil.AssertNoError(t, err)
	_, err = svc.CreateAccount(user.ID, AccountInput{Name: "Petty cash", Type: models.AccountTypeCash, StartingBalance: testutil.AmountPtr("5"), IsActive: boolPtr(false)})
	testutil.AssertNoError(t, err)
	_, err = svc.CreateAccount(user.ID, AccountInput{Name: "100%_savings", Type: models.AccountTypeOther, StartingBalance: testutil.AmountPtr("0")})
	testutil.AssertNoError(t, err)
	_, err = svc.CreateAccount(other.ID, AccountInput{Name: "Main Bank", Type: models.AccountTypeBank, StartingBalance: testutil.AmountPtr("1")})
	testutil.AssertNoError(t, err)

	t.Run("owner_scoped", func(t *testing.T) {
		accounts, err := svc.ListAccounts(user.ID, AccountFilter{})
		testutil.AssertNoError(t, err)
		if len(accounts) != 3 {
			t.Fatalf("expected 3 accounts, got %d", len(accounts))
		}
		for _, a := range accounts {
			if a.UserID != user.ID {
				t.Errorf("got foreign account %s", a.ID)
			}
		}
	})

	t.Run("search_case_insensitive", func(t *testing.T) {
		accounts, err := svc.ListAccounts(user.ID, AccountFilter{Search: "BANK"})
		testutil.AssertNoError(t, err)
		if len(accounts) != 1 || accounts[0].Name != "Main Bank" {
			t.Errorf("expected only Main Bank, got %+v", accounts)
		}
	})

	t.Run("search_escapes_wildcards", func(t *testing.T) {
		accounts, err := svc.ListAccounts(user.ID, AccountFilter{Search: "%_"})
		testutil.AssertNoError(t, err)
		if len(accounts) != 1 || accounts[0].Name != "100%_savings" {
			t.Errorf("expected literal match only, got %+v", accounts)
		}
	})

	t.Run("active_filter", func(t *testing.T) {
		accounts, err := svc.ListAccounts(user.ID, AccountFilter{IsActive: boolPtr(false)})
		testutil.AssertNoError(t, err)
		if len(accounts) != 1 || accounts[0].Name != "Petty cash" {
			t.Errorf("expected only inactive account, got %+v", accounts)
		}
	})
}

func TestAccountCurrentBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewAccountService(db)
	user := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccountWithBalance(t, db, user.ID, models.AccountTypeCash, money.MustParse("100.00"))
	income := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)
	expense := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	testutil.CreateTestTransaction(t, db, user.ID, account, income, money.MustParse("50.25"))
	testutil.CreateTestTransaction(t, db, user.ID, account, expense, money.MustParse("20.10"))

	got, err := svc.GetAccountByID(user.ID, account.ID)
	testutil.AssertNoError(t, err)
	if got.CurrentBalance == nil || got.CurrentBalance.String() != "130.15" {
		t.Errorf("expected current balance 130.15, got %v", got.CurrentBalance)
	}
	if got.StartingBalance.String() != "100.00" {
		t.Errorf("expected starting balance untouched, got %s", got.StartingBalance)
	}
}

func TestUpdateAccount(t *testing.T) {
	t.Run("merges_supplied_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccountWithBalance(t, db, user.ID, models.AccountTypeCash, 500)

		name := "Renamed"
		updated, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{Name: &name, IsActive: boolPtr(false)})
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed" || updated.IsActive {
			t.Errorf("expected renamed inactive account, got %+v", updated)
		}
		if updated.Type != models.AccountTypeCash || updated.StartingBalance != 500 {
			t.Errorf("expected untouched fields to survive, got %+v", updated)
		}
	})

	t.Run("validates_merged_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		badType := models.AccountType("debt")
		_, err := svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{Type: &badType})
		testutil.AssertFieldError(t, err, "type")

		empty := " "
		_, err = svc.UpdateAccount(user.ID, account.ID, AccountUpdateFields{Name: &empty})
		testutil.AssertFieldError(t, err, "name")
	})

	t.Run("foreign_account_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)

		name := "Hijacked"
		_, err := svc.UpdateAccount(intruder.ID, account.ID, AccountUpdateFields{Name: &name})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

		var stored models.Account
		testutil.AssertNoError(t, db.First(&stored, "id = ?", account.ID).Error)
		if stored.Name == "Hijacked" {
			t.Error("foreign update must not modify the account")
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("blocked_with_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		category := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		testutil.CreateTestTransaction(t, db, user.ID, account, category, 100)

		err := svc.DeleteAccount(user.ID, account.ID)
		appErr := testutil.AssertAppError(t, err, "ACCOUNT_HAS_TRANSACTIONS")
		if appErr.Message != "Cannot delete account that has transactions" {
			t.Errorf("unexpected message %q", appErr.Message)
		}

		var count int64
		db.Model(&models.Account{}).Where("id = ?", account.ID).Count(&count)
		if count != 1 {
			t.Error("account must survive a blocked delete")
		}
	})

	t.Run("succeeds_without_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)

		testutil.AssertNoError(t, svc.DeleteAccount(user.ID, account.ID))

		_, err := svc.GetAccountByID(user.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("foreign_and_malformed_ids_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAccountService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)

		testutil.AssertAppError(t, svc.DeleteAccount(intruder.ID, account.ID), "ACCOUNT_NOT_FOUND")
		testutil.AssertAppError(t, svc.DeleteAccount(owner.ID, "not-a-uuid"), "ACCOUNT_NOT_FOUND")
	})
}
