package models

import "time"

// UnknownName is stored when a user is created without a display name.
const UnknownName = "Unknown"

// User is an identity that owns zero or more accounts.
type User struct {
	ID          string
	DisplayName string
	Credential  string // stored verbatim, never compared
	AccountIDs  []string
	CreatedAt   time.Time
}
