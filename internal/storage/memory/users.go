package memory

import (
	"slices"

	interfaces "github.com/sheikh-saqib/banking-ledger/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger/internal/models"
)

// UserDirectory is an in-memory implementation of interfaces.UserDirectory.
// Like AccountStore it relies on the ledger for synchronization.
type UserDirectory struct {
	users map[string]*models.User
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{users: make(map[string]*models.User)}
}

func (d *UserDirectory) Exists(id string) bool {
	_, ok := d.users[id]
	return ok
}

// Create stores the user with an empty account list.
func (d *UserDirectory) Create(user models.User) error {
	if d.Exists(user.ID) {
		return models.ErrorDuplicateUser
	}
	user.AccountIDs = []string{}
	d.users[user.ID] = &user
	return nil
}

// Delete removes the user and hands back the account ids it owned so the
// caller can remove them from the account store.
func (d *UserDirectory) Delete(id string) ([]string, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, models.ErrorUnknownUser
	}
	delete(d.users, id)
	return u.AccountIDs, nil
}

func (d *UserDirectory) Get(id string) (models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return models.User{}, models.ErrorUnknownUser
	}
	cp := *u
	cp.AccountIDs = slices.Clone(u.AccountIDs)
	return cp, nil
}

func (d *UserDirectory) AccountsOf(id string) ([]string, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, models.ErrorUnknownUser
	}
	return slices.Clone(u.AccountIDs), nil
}

func (d *UserDirectory) AddAccount(userID, accountID string) {
	if u, ok := d.users[userID]; ok {
		u.AccountIDs = append(u.AccountIDs, accountID)
	}
}

func (d *UserDirectory) RemoveAccount(userID, accountID string) {
	if u, ok := d.users[userID]; ok {
		u.AccountIDs = slices.DeleteFunc(u.AccountIDs, func(id string) bool { return id == accountID })
	}
}

var _ interfaces.UserDirectory = (*UserDirectory)(nil)
