package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry kinds recorded in the journal.
const (
	EntryCredit = "credit"
	EntryDebit  = "debit"
)

// LedgerEntry represents a single balance change on an account
type LedgerEntry struct {
	ID            string          // unique identifier
	AccountID     string          // which account this entry belongs to
	TransactionID string          // shared by both legs of a transfer
	Kind          string          // credit or debit
	Amount        decimal.Decimal // always positive, Kind carries the direction
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time
}
