package models

// Error is for errors in the business domain. See the constants below.
type Error string

const (
	ErrorEmptyUserID       = Error("user id is required")
	ErrorEmptyCredential   = Error("credential is required")
	ErrorDuplicateUser     = Error("user already exists")
	ErrorUnknownUser       = Error("user does not exist")
	ErrorUnknownAccount    = Error("account does not exist")
	ErrorOwnershipMismatch = Error("account does not belong to user")
	ErrorInvalidAmount     = Error("amount must be a positive number")
	ErrorInsufficientFunds = Error("insufficient funds")
	ErrorSameAccount       = Error("cannot transfer to the same account")
)

// Error satisfies [error].
func (e Error) Error() string {
	return string(e)
}

var _ error = Error("")
