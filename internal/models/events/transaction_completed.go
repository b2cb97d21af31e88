package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types, also used as the message key prefix on the wire.
const (
	TypeDeposit        = "deposit"
	TypeWithdrawal     = "withdrawal"
	TypeTransfer       = "transfer"
	TypeAccountOpened  = "account_opened"
	TypeAccountClosed  = "account_closed"
	TypeUserRegistered = "user_registered"
	TypeUserRemoved    = "user_removed"
)

// Event is anything the ledger publishes after a successful mutation.
type Event interface {
	EventType() string
	EventKey() string
}

type TransactionCompleted struct {
	Type          string          `json:"type"`
	TransactionID string          `json:"transaction_id"`
	FromAccount   string          `json:"from_account,omitempty"`
	ToAccount     string          `json:"to_account,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func (e TransactionCompleted) EventType() string { return e.Type }
func (e TransactionCompleted) EventKey() string { return e.TransactionID }

type AccountChanged struct {
	Type       string    `json:"type"`
	AccountID  string    `json:"account_id"`
	OwnerID    string    `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e AccountChanged) EventType() string { return e.Type }
func (e AccountChanged) EventKey() string { return e.AccountID }

type UserChanged struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	AccountIDs []string  `json:"account_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e UserChanged) EventType() string { return e.Type }
func (e UserChanged) EventKey() string { return e.UserID }
