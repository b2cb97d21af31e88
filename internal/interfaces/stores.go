package interfaces

import (
	"time"

	"github.com/sheikh-saqib/banking-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// UserDirectory owns user records and the account ids each user holds.
type UserDirectory interface {
	Exists(id string) bool
	Create(user models.User) error
	// Delete removes the user and returns the account ids it held.
	Delete(id string) ([]string, error)
	Get(id string) (models.User, error)
	AccountsOf(id string) ([]string, error)
	AddAccount(userID, accountID string)
	RemoveAccount(userID, accountID string)
}

// AccountStore owns account records and their journal. AdjustBalance does
// not validate the sign of the result; that is the caller's job.
type AccountStore interface {
	Exists(id string) bool
	Create(id, ownerID string, at time.Time)
	// Delete removes the account and returns its owner id.
	Delete(id string) (string, error)
	Get(id string) (models.Account, error)
	BalanceOf(id string) (decimal.Decimal, error)
	OwnerOf(id string) (string, error)
	AdjustBalance(id string, delta decimal.Decimal) (decimal.Decimal, error)
	AppendEntry(entry models.LedgerEntry)
	Entries(accountID string) []models.LedgerEntry
}
