package models

import (
	"time"

	"brewbooks/internal/money"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single ledger entry. A non-nil TransferGroupID marks it
// as one leg of a transfer.
type Transaction struct {
	Base
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID       string          `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID      string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Type            TransactionType `gorm:"size:20;not null" json:"type"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date"`
	Amount          money.Amount    `gorm:"type:bigint;not null" json:"amount"`
	Note            *string         `gorm:"size:1000" json:"note"`
	Counterparty    *string         `gorm:"size:255" json:"counterparty"`
	TransferGroupID *string         `gorm:"type:uuid;index" json:"transfer_group_id"`

	Account         *Account     `gorm:"-" json:"account,omitempty"`
	Category        *Category    `gorm:"-" json:"category,omitempty"`
	Attachments     []Attachment `gorm:"-" json:"attachments,omitempty"`
	TransferPartner *Transaction `gorm:"-" json:"transfer_partner,omitempty"`
}

// IsTransferLeg reports whether the transaction belongs to a transfer pair.
func (t *Transaction) IsTransferLeg() bool {
	return t.TransferGroupID != nil && *t.TransferGroupID != ""
}
