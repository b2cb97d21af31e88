package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sheikh-saqib/banking-ledger/internal/models/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := &Publisher{writer: w}

	ev := events.TransactionCompleted{
		Type:          events.TypeTransfer,
		TransactionID: "tx-1",
		FromAccount:   "AAAAAAAAAA",
		ToAccount:     "BBBBBBBBBB",
		Amount:        decimal.RequireFromString("12.50"),
		OccurredAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), "ledger_events", ev))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	require.Equal(t, "ledger_events", msg.Topic)
	require.Equal(t, "tx-1", string(msg.Key))
	require.Equal(t, []kafka.Header{{Key: "event_type", Value: []byte("transfer")}}, msg.Headers)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	require.Equal(t, "transfer", got["type"])
	require.Equal(t, "12.5", got["amount"])
	require.Equal(t, "AAAAAAAAAA", got["from_account"])
}

func TestPublishWriterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), "t", events.UserChanged{Type: events.TypeUserRegistered, UserID: "123"})
	require.ErrorIs(t, err, boom)
}

func TestClose(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	require.NoError(t, (&Publisher{writer: w}).Close())
	require.True(t, w.closed)
}
