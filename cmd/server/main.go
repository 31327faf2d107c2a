package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/DesignerNewsStories/cmd/server/factory"
	"github.com/DesignerNewsStories/internal/app"
	"github.com/DesignerNewsStories/internal/infra/tracing"
	transport "github.com/DesignerNewsStories/internal/transport/http"
	"github.com/DesignerNewsStories/pkg/config"
	"github.com/DesignerNewsStories/pkg/logging"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	fx.New(
		fx.Supply(cfg),
		fx.Provide(
			// Backend access
			factory.NewStoriesService,
			factory.NewStoriesDataSource,

			// Infrastructure
			factory.NewMongoClient,
			factory.NewMongoRepository,
			fx.Annotate(
				factory.NewMainKafkaProducer,
				fx.ResultTags(`name:"main_producer"`),
			),
			fx.Annotate(
				factory.NewDLQProducer,
				fx.ResultTags(`name:"dlq_producer"`),
			),
			fx.Annotate(
				factory.NewKafkaConsumer,
				fx.ParamTags(``, `name:"dlq_producer"`, ``),
			),

			// Sinks & Producers
			factory.NewStorySink,
			fx.Annotate(
				factory.NewEventProducer,
				fx.ParamTags(`name:"main_producer"`),
			),

			// Providers
			factory.NewProviders,

			// Services
			factory.NewStoriesCrawlerService,
			factory.NewStorySyncService,

			// HTTP Server
			transport.NewHTTPServer,
		),
		fx.Invoke(
			SetupTracer,
			WaitForReady,
			RegisterHooks,
			StartServer,
		),
	).Run()
}

func RegisterHooks(lc fx.Lifecycle, crawler *app.StoriesCrawlerService, syncService *app.StorySyncService) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go crawler.Start(ctx)
			syncService.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func SetupTracer(lc fx.Lifecycle, cfg *config.Config) error {
	if !cfg.OTelEnabled {
		slog.Info("Tracing disabled")
		return nil
	}

	shutdown, err := tracing.InitTracer(context.Background(), "designer-news-stories")
	if err != nil {
		slog.Error("Failed to initialize tracer", "error", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Info("Shutting down tracer provider")
			return shutdown(ctx)
		},
	})
	return nil
}

// WaitForReady blocks until MongoDB and Kafka are reachable.
func WaitForReady(cfg *config.Config, mongoClient *mongo.Client) error {
	waiter := app.NewReadinessWaiter(0,
		app.MongoCheck(mongoClient),
		app.KafkaCheck(cfg.KafkaBrokers, cfg.KafkaTopic),
	)
	return waiter.WaitForDependencies(context.Background())
}

func StartServer(lc fx.Lifecycle, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				slog.Info("Starting HTTP server", "address", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
