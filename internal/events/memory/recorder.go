// Package memory keeps published events in process so callers can inspect
// what the ledger emitted without a broker.
package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/banking-ledger/internal/interfaces"
	"github.com/sheikh-saqib/banking-ledger/internal/models/events"
)

// Published is one recorded event.
type Published struct {
	Topic string
	Event events.Event
}

type Recorder struct {
	mu     sync.Mutex
	events []Published
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, topic string, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Published{Topic: topic, Event: event})
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]Published, len(r.events))
	copy(copied, r.events)
	return copied
}

var _ interfaces.EventPublisher = (*Recorder)(nil)
