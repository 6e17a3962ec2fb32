// The outbox consumer subscribes to the ledger event topics and maintains the
// standings projection. It is a pure reader: it never writes to the ledger.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/campusopoly/platform/internal/projection"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

type envelope struct {
	EventID       string          `json:"event_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
}

func run(logger *slog.Logger) error {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	if !cfg.KafkaEnabled {
		return errors.New("KAFKA_ENABLED must be true for the outbox consumer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := projection.NewInMemoryStore()

	topics := []string{
		"campusopoly.team.ledger.transaction.posted",
		"campusopoly.team.team.created",
		"campusopoly.team.team.defaulted",
	}

	for _, topic := range topics {
		consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, topic, "campusopoly-standings", true, logger)
		defer consumer.Close()

		go func(topic string, consumer *infra.KafkaConsumer) {
			for {
				msg, err := consumer.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.Error("read message", "topic", topic, "error", err)
					continue
				}

				var env envelope
				if err := json.Unmarshal(msg.Value, &env); err != nil {
					logger.Error("decode envelope", "topic", topic, "error", err)
					continue
				}

				if err := projection.Apply(ctx, store, domain.EventType(env.EventType), env.Payload); err != nil {
					logger.Error("apply projection", "event_type", env.EventType, "error", err)
					continue
				}
				logger.Debug("projection applied", "event_type", env.EventType, "aggregate_id", env.AggregateID)
			}
		}(topic, consumer)
	}

	logger.Info("outbox consumer running", "topics", topics)
	<-ctx.Done()
	logger.Info("outbox consumer stopped")
	return nil
}
