package queue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/metrics"
	"github.com/segmentio/kafka-go"
)

// messageReader is the subset of *kafka.Reader used by the consumer.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	reader      messageReader
	dlqProducer domain.EventProducer
}

func NewKafkaConsumer(brokers []string, topic string, groupID string, dlqProducer domain.EventProducer) *KafkaConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	slog.Info("Kafka Consumer initialized", "brokers", brokers, "topic", topic, "group", groupID)
	return &KafkaConsumer{
		reader:      r,
		dlqProducer: dlqProducer,
	}
}

type MessageHandler func(ctx context.Context, story *domain.Story) error

// Start reads until the context is cancelled or the reader fails.
func (c *KafkaConsumer) Start(ctx context.Context, handler MessageHandler) {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				slog.Error("Error reading kafka message", "error", err)
			}
			return
		}

		story, err := decodeMessage(m.Value)
		if err != nil {
			slog.Error("Error unmarshaling story", "offset", m.Offset, "error", err)
			continue
		}

		slog.Debug("Received story from Kafka", "id", story.ID, "partition", m.Partition)

		if err := handler(ctx, story); err != nil {
			slog.Error("Error handling story event", "id", story.ID, "error", err)

			if c.dlqProducer != nil {
				slog.Info("Publishing failed event to DLQ", "story_id", story.ID)
				if dlqErr := c.dlqProducer.Publish(ctx, story); dlqErr != nil {
					slog.Error("Failed to publish to DLQ", "story_id", story.ID, "error", dlqErr)
				} else {
					metrics.DLQMessagesPublished.Inc()
				}
			}
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
