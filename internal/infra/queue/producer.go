package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer used by the producer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer messageWriter
}

var _ domain.EventProducer = (*KafkaProducer)(nil)

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{}, // same story ID, same partition
	}
	slog.Info("Kafka Producer initialized", "brokers", brokers, "topic", topic)
	return &KafkaProducer{writer: w}
}

// storyEvent is the wire format of a story on the topic.
// Archive fields are included so consumers can tell revisions apart.
type storyEvent struct {
	domain.Story
	ContentHash string `json:"content_hash,omitempty"`
}

func newMessage(story *domain.Story) (kafka.Message, error) {
	payload, err := json.Marshal(storyEvent{Story: *story, ContentHash: story.ContentHash})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode story %d: %w", story.ID, err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(story.ID, 10)),
		Value: payload,
	}, nil
}

func decodeMessage(value []byte) (*domain.Story, error) {
	var event storyEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, err
	}
	story := event.Story
	story.ContentHash = event.ContentHash
	return &story, nil
}

func (p *KafkaProducer) Publish(ctx context.Context, story *domain.Story) error {
	msg, err := newMessage(story)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("Failed to write to kafka", "story_id", story.ID, "error", err)
		return err
	}

	slog.Debug("Published story to Kafka", "id", story.ID)
	return nil
}

func (p *KafkaProducer) PublishBatch(ctx context.Context, stories []domain.Story) error {
	if len(stories) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(stories))
	for i := range stories {
		msg, err := newMessage(&stories[i])
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write %d stories to kafka: %w", len(msgs), err)
	}

	slog.Debug("Published story batch to Kafka", "count", len(msgs))
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
