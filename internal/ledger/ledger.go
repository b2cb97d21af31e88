package ledger

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/banking-ledger/internal/idgen"
	interfaces "github.com/sheikh-saqib/banking-ledger/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger/internal/models"
	"github.com/sheikh-saqib/banking-ledger/internal/models/events"
	"github.com/sheikh-saqib/banking-ledger/internal/pkg/logger"
	"github.com/sheikh-saqib/banking-ledger/internal/storage/memory"
	"github.com/shopspring/decimal"
)

// maxIDAttempts bounds account id generation. With 36^10 ids a second
// collision in a row already means the generator is broken.
const maxIDAttempts = 16

// Ledger owns users and accounts and applies every operation on them.
// A single mutex serializes all calls, so each one is atomic and isolated.
// Events are published after the mutex is released.
type Ledger struct {
	mu       sync.Mutex
	users    interfaces.UserDirectory
	accounts interfaces.AccountStore
	ids      idgen.Generator

	publisher      interfaces.EventPublisher
	topic          string
	publishTimeout time.Duration

	log *logger.Logger
	now func() time.Time
}

// Option configures a Ledger at construction.
type Option func(*Ledger)

// WithIDGenerator replaces the random account id source.
func WithIDGenerator(g idgen.Generator) Option {
	return func(l *Ledger) { l.ids = g }
}

// WithPublisher sends an event to topic after every successful mutation.
// Publish failures are logged and never change the outcome of the call.
func WithPublisher(p interfaces.EventPublisher, topic string, timeout time.Duration) Option {
	return func(l *Ledger) {
		l.publisher = p
		l.topic = topic
		l.publishTimeout = timeout
	}
}

// WithLogger sets the logger used for operation and publish logging.
func WithLogger(log *logger.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithClock sets the time source for creation and journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger builds a ledger over the given stores. The stores must not be
// shared with another ledger.
func NewLedger(users interfaces.UserDirectory, accounts interfaces.AccountStore, opts ...Option) *Ledger {
	l := &Ledger{
		users:          users,
		accounts:       accounts,
		ids:            idgen.Random{},
		publishTimeout: 5 * time.Second,
		log:            logger.NewNop(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewInMemory builds a ledger over fresh in-memory stores.
func NewInMemory(opts ...Option) *Ledger {
	return NewLedger(memory.NewUserDirectory(), memory.NewAccountStore(), opts...)
}

// UserDeletion confirms DeleteUser and lists the accounts removed with the user.
type UserDeletion struct {
	UserID     string
	AccountIDs []string
}

// AccountDeletion confirms DeleteAccount.
type AccountDeletion struct {
	AccountID string
	OwnerID   string
}

// Receipt confirms a deposit or withdrawal.
type Receipt struct {
	TransactionID string
	AccountID     string
	Amount        decimal.Decimal
	Balance       decimal.Decimal
}

// TransferReceipt confirms a transfer with both resulting balances.
type TransferReceipt struct {
	TransactionID string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	FromBalance   decimal.Decimal
	ToBalance     decimal.Decimal
}

// CreateUser registers a user. Checks run in this order: blank id, existing
// id, blank credential. A blank display name is stored as models.UnknownName.
func (l *Ledger) CreateUser(id, displayName, credential string) (models.User, error) {
	user, err := l.createUser(id, displayName, credential)
	if err != nil {
		return models.User{}, l.reject("create user", err)
	}

	l.log.Debug("user created", "user_id", user.ID)
	l.publish(events.UserChanged{Type: events.TypeUserRegistered, UserID: user.ID, OccurredAt: user.CreatedAt})
	return user, nil
}

func (l *Ledger) createUser(id, displayName, credential string) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(id) == "" {
		return models.User{}, &Error{Kind: ErrEmptyUserID}
	}
	if l.users.Exists(id) {
		return models.User{}, &Error{Kind: ErrDuplicateUser, ID: id}
	}
	if strings.TrimSpace(credential) == "" {
		return models.User{}, &Error{Kind: ErrEmptyCredential, ID: id}
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = models.UnknownName
	}
	if err := l.users.Create(models.User{
		ID:          id,
		DisplayName: name,
		Credential:  credential,
		CreatedAt:   l.now().UTC(),
	}); err != nil {
		return models.User{}, &Error{Kind: ErrDuplicateUser, ID: id}
	}
	return l.users.Get(id)
}

// DeleteUser removes the user and every account it owns.
func (l *Ledger) DeleteUser(id string) (UserDeletion, error) {
	res, err := l.deleteUser(id)
	if err != nil {
		return UserDeletion{}, l.reject("delete user", err)
	}

	l.log.Debug("user deleted", "user_id", id, "accounts", len(res.AccountIDs))
	now := l.now().UTC()
	for _, accountID := range res.AccountIDs {
		l.publish(events.AccountChanged{Type: events.TypeAccountClosed, AccountID: accountID, OwnerID: id, OccurredAt: now})
	}
	l.publish(events.UserChanged{Type: events.TypeUserRemoved, UserID: id, AccountIDs: res.AccountIDs, OccurredAt: now})
	return res, nil
}

func (l *Ledger) deleteUser(id string) (UserDeletion, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	accountIDs, err := l.users.AccountsOf(id)
	if err != nil {
		return UserDeletion{}, unknownUser(id)
	}
	for _, accountID := range accountIDs {
		// ids come from the owner's list, so the account is known to exist
		_, _ = l.accounts.Delete(accountID)
	}
	if _, err := l.users.Delete(id); err != nil {
		return UserDeletion{}, unknownUser(id)
	}
	return UserDeletion{UserID: id, AccountIDs: accountIDs}, nil
}

// CreateAccount opens a zero-balance account for an existing user.
func (l *Ledger) CreateAccount(userID string) (models.Account, error) {
	account, err := l.createAccount(userID)
	if err != nil {
		return models.Account{}, l.reject("create account", err)
	}

	l.log.Debug("account created", "account_id", account.ID, "user_id", userID)
	l.publish(events.AccountChanged{Type: events.TypeAccountOpened, AccountID: account.ID, OwnerID: userID, OccurredAt: account.CreatedAt})
	return account, nil
}

func (l *Ledger) createAccount(userID string) (models.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.users.Exists(userID) {
		return models.Account{}, unknownUser(userID)
	}

	id := l.freshAccountID()
	l.accounts.Create(id, userID, l.now().UTC())
	l.users.AddAccount(userID, id)
	return l.accounts.Get(id)
}

func (l *Ledger) freshAccountID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := l.ids.NewAccountID()
		if !l.accounts.Exists(id) {
			return id
		}
		l.log.Warn("account id collision, retrying", "attempt", i+1)
	}
	panic("ledger: could not generate a unique account id")
}

// DeleteAccount closes an account. When requestingUserID is non-empty it must
// match the owner, otherwise nothing changes and ErrOwnershipMismatch is
// returned. An empty requestingUserID skips the ownership check.
func (l *Ledger) DeleteAccount(accountID, requestingUserID string) (AccountDeletion, error) {
	res, err := l.deleteAccount(accountID, requestingUserID)
	if err != nil {
		return AccountDeletion{}, l.reject("delete account", err)
	}

	l.log.Debug("account deleted", "account_id", accountID, "user_id", res.OwnerID)
	l.publish(events.AccountChanged{Type: events.TypeAccountClosed, AccountID: accountID, OwnerID: res.OwnerID, OccurredAt: l.now().UTC()})
	return res, nil
}

func (l *Ledger) deleteAccount(accountID, requestingUserID string) (AccountDeletion, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, err := l.accounts.OwnerOf(accountID)
	if err != nil {
		return AccountDeletion{}, unknownAccount(accountID, "")
	}
	if requestingUserID != "" && requestingUserID != owner {
		return AccountDeletion{}, &Error{Kind: ErrOwnershipMismatch, ID: accountID, UserID: requestingUserID}
	}

	if _, err := l.accounts.Delete(accountID); err != nil {
		return AccountDeletion{}, unknownAccount(accountID, "")
	}
	l.users.RemoveAccount(owner, accountID)
	return AccountDeletion{AccountID: accountID, OwnerID: owner}, nil
}

// Deposit adds a positive amount to an account.
func (l *Ledger) Deposit(accountID string, amount decimal.Decimal) (Receipt, error) {
	r, err := l.deposit(accountID, amount)
	if err != nil {
		return Receipt{}, l.reject("deposit", err)
	}

	l.log.Debug("deposit applied", "account_id", accountID, "amount", amount.String(), "balance", r.Balance.String())
	l.publish(events.TransactionCompleted{
		Type:          events.TypeDeposit,
		TransactionID: r.TransactionID,
		ToAccount:     accountID,
		Amount:        amount,
		OccurredAt:    l.now().UTC(),
	})
	return r, nil
}

func (l *Ledger) deposit(accountID string, amount decimal.Decimal) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.accounts.Exists(accountID) {
		return Receipt{}, unknownAccount(accountID, "")
	}
	if !validAmount(amount) {
		return Receipt{}, invalidAmount(amountText(amount))
	}

	txID := uuid.NewString()
	balance, err := l.apply(txID, accountID, models.EntryCredit, amount)
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{TransactionID: txID, AccountID: accountID, Amount: amount, Balance: balance}, nil
}

// Withdraw takes a positive amount out of an account. The amount may equal
// but not exceed the current balance.
func (l *Ledger) Withdraw(accountID string, amount decimal.Decimal) (Receipt, error) {
	r, err := l.withdraw(accountID, amount)
	if err != nil {
		return Receipt{}, l.reject("withdraw", err)
	}

	l.log.Debug("withdrawal applied", "account_id", accountID, "amount", amount.String(), "balance", r.Balance.String())
	l.publish(events.TransactionCompleted{
		Type:          events.TypeWithdrawal,
		TransactionID: r.TransactionID,
		FromAccount:   accountID,
		Amount:        amount,
		OccurredAt:    l.now().UTC(),
	})
	return r, nil
}

func (l *Ledger) withdraw(accountID string, amount decimal.Decimal) (Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, err := l.accounts.BalanceOf(accountID)
	if err != nil {
		return Receipt{}, unknownAccount(accountID, "")
	}
	if !validAmount(amount) {
		return Receipt{}, invalidAmount(amountText(amount))
	}
	if amount.GreaterThan(balance) {
		return Receipt{}, &Error{Kind: ErrInsufficientFunds, ID: accountID, Balance: balance}
	}

	txID := uuid.NewString()
	balance, err = l.apply(txID, accountID, models.EntryDebit, amount)
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{TransactionID: txID, AccountID: accountID, Amount: amount, Balance: balance}, nil
}

// Transfer moves amount from one account to another. Checks run in this
// order: source exists, destination exists, amount, distinct accounts, funds.
// Both balances change together or not at all.
func (l *Ledger) Transfer(fromID, toID string, amount decimal.Decimal) (TransferReceipt, error) {
	r, err := l.transfer(fromID, toID, amount)
	if err != nil {
		return TransferReceipt{}, l.reject("transfer", err)
	}

	l.log.Debug("transfer applied",
		"transaction_id", r.TransactionID,
		"from_account", fromID,
		"to_account", toID,
		"amount", amount.String(),
	)
	l.publish(events.TransactionCompleted{
		Type:          events.TypeTransfer,
		TransactionID: r.TransactionID,
		FromAccount:   fromID,
		ToAccount:     toID,
		Amount:        amount,
		OccurredAt:    l.now().UTC(),
	})
	return r, nil
}

func (l *Ledger) transfer(fromID, toID string, amount decimal.Decimal) (TransferReceipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fromBalance, err := l.accounts.BalanceOf(fromID)
	if err != nil {
		return TransferReceipt{}, unknownAccount(fromID, RoleSource)
	}
	if !l.accounts.Exists(toID) {
		return TransferReceipt{}, unknownAccount(toID, RoleDestination)
	}
	if !validAmount(amount) {
		return TransferReceipt{}, invalidAmount(amountText(amount))
	}
	if fromID == toID {
		return TransferReceipt{}, &Error{Kind: ErrSameAccount, ID: fromID}
	}
	if amount.GreaterThan(fromBalance) {
		return TransferReceipt{}, &Error{Kind: ErrInsufficientFunds, ID: fromID, Balance: fromBalance}
	}

	// Every check has passed and both accounts exist, so neither leg can fail.
	txID := uuid.NewString()
	newFrom, err := l.apply(txID, fromID, models.EntryDebit, amount)
	if err != nil {
		return TransferReceipt{}, err
	}
	newTo, err := l.apply(txID, toID, models.EntryCredit, amount)
	if err != nil {
		return TransferReceipt{}, err
	}

	return TransferReceipt{
		TransactionID: txID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		FromBalance:   newFrom,
		ToBalance:     newTo,
	}, nil
}

// apply changes one balance and journals it. Callers hold the mutex and have
// already validated the change.
func (l *Ledger) apply(txID, accountID, kind string, amount decimal.Decimal) (decimal.Decimal, error) {
	delta := amount
	if kind == models.EntryDebit {
		delta = amount.Neg()
	}

	balance, err := l.accounts.AdjustBalance(accountID, delta)
	if err != nil {
		return decimal.Zero, unknownAccount(accountID, "")
	}

	l.accounts.AppendEntry(models.LedgerEntry{
		ID:            txID + "-" + kind,
		AccountID:     accountID,
		TransactionID: txID,
		Kind:          kind,
		Amount:        amount,
		BalanceAfter:  balance,
		CreatedAt:     l.now().UTC(),
	})
	return balance, nil
}

// UserExists reports whether a user with id is registered.
func (l *Ledger) UserExists(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.users.Exists(id)
}

// AccountExists reports whether an account with id is live.
func (l *Ledger) AccountExists(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts.Exists(id)
}

// User returns a copy of the user record.
func (l *Ledger) User(id string) (models.User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, err := l.users.Get(id)
	if err != nil {
		return models.User{}, unknownUser(id)
	}
	return u, nil
}

// Account returns a copy of the account record.
func (l *Ledger) Account(id string) (models.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.accounts.Get(id)
	if err != nil {
		return models.Account{}, unknownAccount(id, "")
	}
	return a, nil
}

// Balance returns the current balance of an account.
func (l *Ledger) Balance(accountID string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.accounts.BalanceOf(accountID)
	if err != nil {
		return decimal.Zero, unknownAccount(accountID, "")
	}
	return b, nil
}

// AccountsOf lists the user's account ids in creation order.
func (l *Ledger) AccountsOf(userID string) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids, err := l.users.AccountsOf(userID)
	if err != nil {
		return nil, unknownUser(userID)
	}
	return ids, nil
}

// OwnerOf returns the id of the user that owns an account.
func (l *Ledger) OwnerOf(accountID string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, err := l.accounts.OwnerOf(accountID)
	if err != nil {
		return "", unknownAccount(accountID, "")
	}
	return owner, nil
}

// Entries returns the journal of a live account, oldest first.
func (l *Ledger) Entries(accountID string) ([]models.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.accounts.Exists(accountID) {
		return nil, unknownAccount(accountID, "")
	}
	return l.accounts.Entries(accountID), nil
}

func (l *Ledger) reject(op string, err error) error {
	l.log.Debug("operation rejected", "op", op, "error", err.Error())
	return err
}

func (l *Ledger) publish(event events.Event) {
	if l.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.publishTimeout)
	defer cancel()

	if err := l.publisher.Publish(ctx, l.topic, event); err != nil {
		l.log.Warn("failed to publish event", "type", event.EventType(), "key", event.EventKey(), "error", err.Error())
	}
}
