package interfaces

import (
	"context"

	"github.com/sheikh-saqib/banking-ledger/internal/models/events"
)

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Event) error
}
