package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "ledger").Info("deposit applied", "account_id", "ABC")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "deposit applied", entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, "ledger", fields["component"])
	require.Equal(t, "ABC", fields["account_id"])
}
