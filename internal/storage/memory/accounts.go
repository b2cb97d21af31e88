package memory

import (
	"time"

	interfaces "github.com/sheikh-saqib/banking-ledger/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// AccountStore is an in-memory implementation of interfaces.AccountStore.
// It is not safe for concurrent use on its own; the ledger serializes access.
type AccountStore struct {
	accounts map[string]*models.Account      // live accounts by id
	entries  map[string][]models.LedgerEntry // journal per account, in append order
}

// NewAccountStore creates and returns an empty AccountStore
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*models.Account),
		entries:  make(map[string][]models.LedgerEntry),
	}
}

func (s *AccountStore) Exists(id string) bool {
	_, ok := s.accounts[id]
	return ok
}

// Create inserts an account with a zero balance. The caller guarantees the id
// is unused and the owner exists.
func (s *AccountStore) Create(id, ownerID string, at time.Time) {
	s.accounts[id] = &models.Account{
		ID:        id,
		OwnerID:   ownerID,
		Balance:   decimal.Zero,
		CreatedAt: at,
	}
}

// Delete removes the account together with its journal and returns the owner id.
func (s *AccountStore) Delete(id string) (string, error) {
	a, ok := s.accounts[id]
	if !ok {
		return "", models.ErrorUnknownAccount
	}
	delete(s.accounts, id)
	delete(s.entries, id)
	return a.OwnerID, nil
}

// Get returns a copy of the account so callers can't modify internal state.
func (s *AccountStore) Get(id string) (models.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, models.ErrorUnknownAccount
	}
	return *a, nil
}

func (s *AccountStore) BalanceOf(id string) (decimal.Decimal, error) {
	a, ok := s.accounts[id]
	if !ok {
		return decimal.Zero, models.ErrorUnknownAccount
	}
	return a.Balance, nil
}

func (s *AccountStore) OwnerOf(id string) (string, error) {
	a, ok := s.accounts[id]
	if !ok {
		return "", models.ErrorUnknownAccount
	}
	return a.OwnerID, nil
}

// AdjustBalance applies balance += delta and returns the new balance.
func (s *AccountStore) AdjustBalance(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	a, ok := s.accounts[id]
	if !ok {
		return decimal.Zero, models.ErrorUnknownAccount
	}
	a.Balance = a.Balance.Add(delta)
	return a.Balance, nil
}

// AppendEntry records a journal line. Entries for unknown accounts are dropped.
func (s *AccountStore) AppendEntry(entry models.LedgerEntry) {
	if _, ok := s.accounts[entry.AccountID]; !ok {
		return
	}
	s.entries[entry.AccountID] = append(s.entries[entry.AccountID], entry)
}

// Entries returns a copy of the journal for an account.
func (s *AccountStore) Entries(accountID string) []models.LedgerEntry {
	src := s.entries[accountID]
	copied := make([]models.LedgerEntry, len(src))
	copy(copied, src)
	return copied
}

// Compile-time check: ensure AccountStore implements the AccountStore interface
var _ interfaces.AccountStore = (*AccountStore)(nil)
