package models

import "brewbooks/internal/money"

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeCash    AccountType = "cash"
	AccountTypeBank    AccountType = "bank"
	AccountTypeEwallet AccountType = "ewallet"
	AccountTypeOther   AccountType = "other"
)

// Account is a named money container. CurrentBalance is derived from the
// starting balance and the account's transactions when the row is read.
type Account struct {
	Base
	UserID          string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string       `gorm:"size:100;not null" json:"name"`
	Type            AccountType  `gorm:"size:20;not null" json:"type"`
	StartingBalance money.Amount `gorm:"type:bigint;not null" json:"starting_balance"`
	IsActive        bool         `gorm:"not null" json:"is_active"`

	CurrentBalance *money.Amount `gorm:"-" json:"current_balance,omitempty"`
}
