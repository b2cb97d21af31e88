package ledger

import (
	"fmt"

	"github.com/sheikh-saqib/banking-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Error kinds. Every failure returned by the ledger is an *Error whose Kind is
// one of these, so callers can match with errors.Is.
const (
	ErrEmptyUserID       = models.ErrorEmptyUserID
	ErrEmptyCredential   = models.ErrorEmptyCredential
	ErrDuplicateUser     = models.ErrorDuplicateUser
	ErrUnknownUser       = models.ErrorUnknownUser
	ErrUnknownAccount    = models.ErrorUnknownAccount
	ErrOwnershipMismatch = models.ErrorOwnershipMismatch
	ErrInvalidAmount     = models.ErrorInvalidAmount
	ErrInsufficientFunds = models.ErrorInsufficientFunds
	ErrSameAccount       = models.ErrorSameAccount
)

// Transfer roles reported on ErrUnknownAccount.
const (
	RoleSource      = "source"
	RoleDestination = "destination"
)

// Error is a rejected ledger operation. Only the fields relevant to Kind are set.
type Error struct {
	Kind    models.Error
	ID      string          // user or account id the failure is about
	Role    string          // RoleSource or RoleDestination for transfers
	UserID  string          // requesting user on ErrOwnershipMismatch
	Input   string          // rejected amount as given on ErrInvalidAmount
	Balance decimal.Decimal // current balance on ErrInsufficientFunds
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrDuplicateUser:
		return fmt.Sprintf("user %q already exists", e.ID)
	case ErrUnknownUser:
		return fmt.Sprintf("user %q does not exist", e.ID)
	case ErrUnknownAccount:
		if e.Role != "" {
			return fmt.Sprintf("%s account %q does not exist", e.Role, e.ID)
		}
		return fmt.Sprintf("account %q does not exist", e.ID)
	case ErrOwnershipMismatch:
		return fmt.Sprintf("account %q does not belong to user %q", e.ID, e.UserID)
	case ErrInvalidAmount:
		if e.Input != "" {
			return fmt.Sprintf("invalid amount %q: %s", e.Input, e.Kind)
		}
		return e.Kind.Error()
	case ErrInsufficientFunds:
		return fmt.Sprintf("insufficient funds, current balance: %s", e.Balance)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func unknownUser(id string) *Error {
	return &Error{Kind: ErrUnknownUser, ID: id}
}

func unknownAccount(id, role string) *Error {
	return &Error{Kind: ErrUnknownAccount, ID: id, Role: role}
}

func invalidAmount(input string) *Error {
	return &Error{Kind: ErrInvalidAmount, Input: input}
}
