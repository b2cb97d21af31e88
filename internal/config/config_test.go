package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LEDGER_ENV", "")
	t.Setenv("LEDGER_KAFKA_BROKERS", "")
	t.Setenv("LEDGER_KAFKA_TOPIC", "")
	t.Setenv("LEDGER_PUBLISH_TIMEOUT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Empty(t, cfg.KafkaBrokers)
	require.Equal(t, "ledger_events", cfg.KafkaTopic)
	require.Equal(t, 5*time.Second, cfg.PublishTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LEDGER_ENV", "prod")
	t.Setenv("LEDGER_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("LEDGER_KAFKA_TOPIC", "bank")
	t.Setenv("LEDGER_PUBLISH_TIMEOUT", "250ms")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "bank", cfg.KafkaTopic)
	require.Equal(t, 250*time.Millisecond, cfg.PublishTimeout)
}

func TestLoadDotEnvFile(t *testing.T) {
	// godotenv never overrides variables that are already set, so make sure
	// this one is absent before loading the file
	t.Setenv("LEDGER_KAFKA_TOPIC", "")
	require.NoError(t, os.Unsetenv("LEDGER_KAFKA_TOPIC"))
	t.Setenv("LEDGER_PUBLISH_TIMEOUT", "bogus")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_KAFKA_TOPIC=from_file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from_file", cfg.KafkaTopic)
	require.Equal(t, 5*time.Second, cfg.PublishTimeout)
}
