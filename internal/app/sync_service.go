package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/metrics"
	"github.com/DesignerNewsStories/internal/infra/queue"
)

// StorySyncService forwards story events from Kafka to a downstream sink.
type StorySyncService struct {
	consumer *queue.KafkaConsumer
	sink     domain.StorySink
}

func NewStorySyncService(consumer *queue.KafkaConsumer, sink domain.StorySink) *StorySyncService {
	return &StorySyncService{
		consumer: consumer,
		sink:     sink,
	}
}

func (s *StorySyncService) Start(ctx context.Context) {
	slog.Info("Starting story sync service (Kafka consumer)")
	go s.consumer.Start(ctx, s.handleEvent)
}

func (s *StorySyncService) handleEvent(ctx context.Context, story *domain.Story) error {
	start := time.Now()
	slog.Info("Consuming event for sync", "story_id", story.ID, "title", story.Title)

	err := s.sink.SyncStory(ctx, story)
	metrics.SyncDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Error("Failed to sync story", "story_id", story.ID, "error", err)
		metrics.SyncErrors.Inc()
		return err
	}

	metrics.SyncSuccess.Inc()
	return nil
}

func (s *StorySyncService) Stop() error {
	return s.consumer.Close()
}
