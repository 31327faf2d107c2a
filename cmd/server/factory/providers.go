package factory

import (
	"errors"
	"log/slog"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/api"
	"github.com/DesignerNewsStories/internal/infra/datasource"
	"github.com/DesignerNewsStories/internal/infra/provider"
	"github.com/DesignerNewsStories/internal/infra/transformer"
	"github.com/DesignerNewsStories/pkg/config"
)

// NewStoriesService creates the Designer News HTTP client.
func NewStoriesService(cfg *config.Config) (domain.StoriesService, error) {
	if cfg.APIURL == "" {
		return nil, errors.New("designer news API URL not configured")
	}
	tr, err := transformer.GetTransformer(cfg.PayloadFormat)
	if err != nil {
		return nil, err
	}
	svc, err := api.NewDesignerNewsService(cfg.APIURL,
		api.WithTimeout(cfg.HTTPClientTimeout),
		api.WithToken(cfg.APIToken),
		api.WithTransformer(tr),
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// NewStoriesDataSource wraps the backend service into Results.
func NewStoriesDataSource(service domain.StoriesService) domain.StoriesDataSource {
	return datasource.NewStoriesRemoteDataSource(service)
}

// NewProviders creates the crawled providers.
func NewProviders(cfg *config.Config, dataSource domain.StoriesDataSource) ([]domain.Provider, error) {
	if cfg.CrawlMaxPages < 1 {
		return nil, errors.New("crawl max pages must be at least 1")
	}
	p := provider.NewStoriesProvider("designer-news-top", dataSource, cfg.CrawlMaxPages)
	slog.Info("Registered provider", "provider", p.GetName(), "max_pages", cfg.CrawlMaxPages)
	return []domain.Provider{p}, nil
}
