package memory

import (
	"testing"
	"time"

	"github.com/sheikh-saqib/banking-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAccountStore(t *testing.T) {
	t.Parallel()

	s := NewAccountStore()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Create("ACC1", "123", at)

	require.True(t, s.Exists("ACC1"))
	a, err := s.Get("ACC1")
	require.NoError(t, err)
	require.Equal(t, "123", a.OwnerID)
	require.True(t, a.Balance.IsZero())
	require.Equal(t, at, a.CreatedAt)

	// AdjustBalance does no validation of its own
	bal, err := s.AdjustBalance("ACC1", decimal.NewFromInt(-5))
	require.NoError(t, err)
	require.True(t, bal.Equal(decimal.NewFromInt(-5)))
	bal, err = s.AdjustBalance("ACC1", decimal.NewFromInt(7))
	require.NoError(t, err)
	require.True(t, bal.Equal(decimal.NewFromInt(2)))

	got, err := s.BalanceOf("ACC1")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(2)))

	owner, err := s.OwnerOf("ACC1")
	require.NoError(t, err)
	require.Equal(t, "123", owner)

	owner, err = s.Delete("ACC1")
	require.NoError(t, err)
	require.Equal(t, "123", owner)
	require.False(t, s.Exists("ACC1"))

	_, err = s.Delete("ACC1")
	require.ErrorIs(t, err, models.ErrorUnknownAccount)
	_, err = s.BalanceOf("ACC1")
	require.ErrorIs(t, err, models.ErrorUnknownAccount)
	_, err = s.OwnerOf("ACC1")
	require.ErrorIs(t, err, models.ErrorUnknownAccount)
	_, err = s.Get("ACC1")
	require.ErrorIs(t, err, models.ErrorUnknownAccount)
	_, err = s.AdjustBalance("ACC1", decimal.NewFromInt(1))
	require.ErrorIs(t, err, models.ErrorUnknownAccount)
}

func TestAccountStoreJournal(t *testing.T) {
	t.Parallel()

	s := NewAccountStore()
	s.Create("ACC1", "123", time.Now())

	s.AppendEntry(models.LedgerEntry{ID: "tx1-credit", AccountID: "ACC1", Kind: models.EntryCredit})
	s.AppendEntry(models.LedgerEntry{ID: "tx2-debit", AccountID: "ACC1", Kind: models.EntryDebit})
	s.AppendEntry(models.LedgerEntry{ID: "tx3-credit", AccountID: "nope"})

	entries := s.Entries("ACC1")
	require.Len(t, entries, 2)
	require.Equal(t, "tx1-credit", entries[0].ID)
	require.Equal(t, "tx2-debit", entries[1].ID)
	require.Empty(t, s.Entries("nope"))

	// callers get a copy
	entries[0].ID = "changed"
	require.Equal(t, "tx1-credit", s.Entries("ACC1")[0].ID)

	_, err := s.Delete("ACC1")
	require.NoError(t, err)
	require.Empty(t, s.Entries("ACC1"))
}

func TestUserDirectory(t *testing.T) {
	t.Parallel()

	d := NewUserDirectory()
	require.NoError(t, d.Create(models.User{ID: "123", DisplayName: "Alice", AccountIDs: []string{"ignored"}}))
	require.ErrorIs(t, d.Create(models.User{ID: "123"}), models.ErrorDuplicateUser)
	require.True(t, d.Exists("123"))

	ids, err := d.AccountsOf("123")
	require.NoError(t, err)
	require.Equal(t, []string{}, ids)

	d.AddAccount("123", "A")
	d.AddAccount("123", "B")
	d.AddAccount("123", "C")
	d.AddAccount("missing", "D")
	d.RemoveAccount("123", "B")
	d.RemoveAccount("missing", "A")

	u, err := d.Get("123")
	require.NoError(t, err)
	require.Equal(t, "Alice", u.DisplayName)
	require.Equal(t, []string{"A", "C"}, u.AccountIDs)

	// mutating the copy leaves the directory alone
	u.AccountIDs[0] = "Z"
	ids, err = d.AccountsOf("123")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C"}, ids)

	orphaned, err := d.Delete("123")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C"}, orphaned)
	require.False(t, d.Exists("123"))

	_, err = d.Delete("123")
	require.ErrorIs(t, err, models.ErrorUnknownUser)
	_, err = d.AccountsOf("123")
	require.ErrorIs(t, err, models.ErrorUnknownUser)
	_, err = d.Get("123")
	require.ErrorIs(t, err, models.ErrorUnknownUser)
}
