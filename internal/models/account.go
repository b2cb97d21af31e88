package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a balance-holding record owned by exactly one user.
type Account struct {
	ID        string
	OwnerID   string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
