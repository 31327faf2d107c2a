// Package factory provides dependency injection constructors for infrastructure components.
package factory

import (
	"context"
	"errors"
	"time"

	"github.com/DesignerNewsStories/internal/infra/queue"
	"github.com/DesignerNewsStories/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// NewMongoClient connects to MongoDB and disconnects on shutdown.
func NewMongoClient(lc fx.Lifecycle, cfg *config.Config) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, errors.New("mongo URI not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("designer-news-stories"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})
	return client, nil
}

func newProducer(lc fx.Lifecycle, brokers []string, topic string) (*queue.KafkaProducer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers not configured")
	}
	if topic == "" {
		return nil, errors.New("kafka topic not configured")
	}

	producer := queue.NewKafkaProducer(brokers, topic)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return producer.Close()
		},
	})
	return producer, nil
}

// NewMainKafkaProducer creates the producer for story events.
func NewMainKafkaProducer(cfg *config.Config, lc fx.Lifecycle) (*queue.KafkaProducer, error) {
	return newProducer(lc, cfg.KafkaBrokers, cfg.KafkaTopic)
}

// NewDLQProducer creates the producer for events the sync consumer gave up on.
func NewDLQProducer(cfg *config.Config, lc fx.Lifecycle) (*queue.KafkaProducer, error) {
	return newProducer(lc, cfg.KafkaBrokers, cfg.KafkaDLQTopic)
}

// NewKafkaConsumer creates the story event consumer with DLQ support.
func NewKafkaConsumer(
	cfg *config.Config,
	dlqProducer *queue.KafkaProducer,
	lc fx.Lifecycle,
) (*queue.KafkaConsumer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("kafka brokers not configured")
	}
	if cfg.KafkaTopic == "" || cfg.KafkaGroupID == "" {
		return nil, errors.New("kafka topic and group must be configured")
	}

	consumer := queue.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, dlqProducer)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return consumer.Close()
		},
	})
	return consumer, nil
}
