package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DependencyCheck reports whether one external dependency is usable.
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ReadinessWaiter polls dependency checks in order until each one passes.
type ReadinessWaiter struct {
	checks       []DependencyCheck
	pollInterval time.Duration
}

func NewReadinessWaiter(pollInterval time.Duration, checks ...DependencyCheck) *ReadinessWaiter {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &ReadinessWaiter{checks: checks, pollInterval: pollInterval}
}

// WaitForDependencies has no timeout of its own: slow dependencies are waited for
// until ctx is cancelled.
func (w *ReadinessWaiter) WaitForDependencies(ctx context.Context) error {
	for _, c := range w.checks {
		if err := w.waitFor(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReadinessWaiter) waitFor(ctx context.Context, c DependencyCheck) error {
	slog.Info("Waiting for dependency", "dependency", c.Name)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		err := c.Check(ctx)
		if err == nil {
			slog.Info("Dependency is ready", "dependency", c.Name)
			return nil
		}
		slog.Warn("Dependency not ready yet", "dependency", c.Name, "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", c.Name, ctx.Err())
		case <-ticker.C:
		}
	}
}

// MongoCheck pings the primary.
func MongoCheck(client *mongo.Client) DependencyCheck {
	return DependencyCheck{
		Name: "mongodb",
		Check: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
}

// KafkaCheck verifies every broker accepts connections and the topic has partitions.
func KafkaCheck(brokers []string, topic string) DependencyCheck {
	return DependencyCheck{
		Name: "kafka",
		Check: func(ctx context.Context) error {
			if len(brokers) == 0 {
				return errors.New("no brokers configured")
			}

			dialer := &kafka.Dialer{Timeout: 2 * time.Second}
			for _, broker := range brokers {
				conn, err := dialer.DialContext(ctx, "tcp", broker)
				if err != nil {
					return fmt.Errorf("failed to connect to broker %s: %w", broker, err)
				}
				_ = conn.Close()
			}

			conn, err := dialer.DialContext(ctx, "tcp", brokers[0])
			if err != nil {
				return fmt.Errorf("failed to dial kafka: %w", err)
			}
			defer func() {
				_ = conn.Close()
			}()

			partitions, err := conn.ReadPartitions(topic)
			if err != nil {
				return fmt.Errorf("failed to read partitions for topic %s: %w", topic, err)
			}
			if len(partitions) == 0 {
				return fmt.Errorf("topic %s has no partitions", topic)
			}
			return nil
		},
	}
}
