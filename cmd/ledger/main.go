package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikh-saqib/banking-ledger/internal/config"
	"github.com/sheikh-saqib/banking-ledger/internal/console"
	"github.com/sheikh-saqib/banking-ledger/internal/events/kafka"
	"github.com/sheikh-saqib/banking-ledger/internal/ledger"
	"github.com/sheikh-saqib/banking-ledger/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts := []ledger.Option{ledger.WithLogger(log.With("component", "ledger"))}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Warn("failed to close kafka publisher", "error", err.Error())
			}
		}()
		opts = append(opts, ledger.WithPublisher(publisher, cfg.KafkaTopic, cfg.PublishTimeout))
		log.Info("publishing ledger events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	l := ledger.NewInMemory(opts...)
	c := console.New(l, log.With("component", "console"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- c.Run(os.Stdin, os.Stdout)
	}()

	log.Info("ledger console ready, type help for commands", "env", cfg.Env)
	select {
	case err := <-done:
		if err != nil {
			log.Error("console stopped", "error", err.Error())
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}
}
