package factory

import (
	"errors"
	"fmt"

	"github.com/DesignerNewsStories/internal/app"
	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/gateway"
	"github.com/DesignerNewsStories/internal/infra/queue"
	"github.com/DesignerNewsStories/internal/infra/repository"
	"github.com/DesignerNewsStories/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewMongoRepository creates a MongoDB repository.
func NewMongoRepository(client *mongo.Client, cfg *config.Config) (domain.Repository, error) {
	if cfg.MongoDBName == "" {
		return nil, errors.New("mongo database name not configured")
	}
	if cfg.MongoColl == "" {
		return nil, errors.New("mongo collection name not configured")
	}
	repo, err := repository.NewMongoRepository(client, cfg.MongoDBName, cfg.MongoColl)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// NewStorySink creates the downstream sink for synced stories.
func NewStorySink() domain.StorySink {
	return gateway.NewLogSink(nil)
}

// NewEventProducer wraps the Kafka producer as an EventProducer.
func NewEventProducer(p *queue.KafkaProducer) (domain.EventProducer, error) {
	if p == nil {
		return nil, errors.New("kafka producer is nil")
	}
	return p, nil
}

// NewStoriesCrawlerService creates the crawler service with validation.
func NewStoriesCrawlerService(
	repo domain.Repository,
	providers []domain.Provider,
	eventProducer domain.EventProducer,
	cfg *config.Config,
) (*app.StoriesCrawlerService, error) {
	if repo == nil {
		return nil, errors.New("repository is nil")
	}
	if len(providers) == 0 {
		return nil, errors.New("no providers configured")
	}
	if eventProducer == nil {
		return nil, errors.New("event producer is nil")
	}
	if cfg.BatchSize < 1 || cfg.BatchSize > 20000 {
		return nil, fmt.Errorf("invalid batch size: %d (must be 1-20000)", cfg.BatchSize)
	}
	if cfg.WorkerPoolSize <= 0 || cfg.WorkerPoolSize > 100 {
		return nil, fmt.Errorf("invalid worker pool size: %d (must be 1-100)", cfg.WorkerPoolSize)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid poll interval: %s", cfg.PollInterval)
	}

	return app.NewStoriesCrawlerService(
		repo,
		providers,
		eventProducer,
		cfg.PollInterval,
		cfg.BatchSize,
		cfg.WorkerPoolSize,
	), nil
}

// NewStorySyncService creates the sync service.
func NewStorySyncService(consumer *queue.KafkaConsumer, sink domain.StorySink) (*app.StorySyncService, error) {
	if consumer == nil {
		return nil, errors.New("kafka consumer is nil")
	}
	if sink == nil {
		return nil, errors.New("story sink is nil")
	}
	return app.NewStorySyncService(consumer, sink), nil
}
