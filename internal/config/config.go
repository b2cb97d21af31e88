package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string        // Environment (dev, prod) (default: dev), also selects the log mode
	KafkaBrokers   []string      // Optional: broker addresses, empty disables Kafka publishing
	KafkaTopic     string        // Topic for ledger events (default: ledger_events)
	PublishTimeout time.Duration // Per-event publish timeout (default: 5s)
}

// Load reads an optional .env file and then the environment. A missing .env
// file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	return Config{
		Env:            getEnvOrDefault("LEDGER_ENV", "dev"),
		KafkaBrokers:   splitList(os.Getenv("LEDGER_KAFKA_BROKERS")),
		KafkaTopic:     getEnvOrDefault("LEDGER_KAFKA_TOPIC", "ledger_events"),
		PublishTimeout: getEnvDurationOrDefault("LEDGER_PUBLISH_TIMEOUT", 5*time.Second),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
