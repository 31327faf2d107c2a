package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/sony/gobreaker"
)

const maxConsecutiveHandlerErrors = 5

// StoriesProvider crawls top stories page by page through a data source.
type StoriesProvider struct {
	name       string
	dataSource domain.StoriesDataSource
	maxPages   int
	cb         *gobreaker.CircuitBreaker
}

var _ domain.Provider = (*StoriesProvider)(nil)

func NewStoriesProvider(name string, dataSource domain.StoriesDataSource, maxPages int) *StoriesProvider {
	if maxPages < 1 {
		maxPages = 1
	}

	cbSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
		},
	}

	return &StoriesProvider{
		name:       name,
		dataSource: dataSource,
		maxPages:   maxPages,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
	}
}

func (p *StoriesProvider) GetName() string {
	return p.name
}

// Crawl walks pages 1..maxPages and hands every non-empty page to handler.
// A failed page stops the crawl. Handler errors are skipped until too many happen in a row.
func (p *StoriesProvider) Crawl(ctx context.Context, handler func([]domain.Story) error) error {
	consecutiveHandlerErrors := 0

	for page := 1; page <= p.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		stories, err := p.fetchPage(ctx, page)
		if err != nil {
			return fmt.Errorf("provider %s page %d: %w", p.name, page, err)
		}

		if len(stories) == 0 {
			slog.Debug("No stories on page, stopping", "provider", p.name, "page", page)
			return nil
		}

		slog.Info("Fetched page", "provider", p.name, "page", page, "stories_on_page", len(stories))

		if err := handler(stories); err != nil {
			consecutiveHandlerErrors++
			slog.Error("Failed to handle page", "provider", p.name, "page", page, "error", err)
			if consecutiveHandlerErrors >= maxConsecutiveHandlerErrors {
				return fmt.Errorf("provider %s: too many consecutive handler errors: %w", p.name, err)
			}
			continue
		}
		consecutiveHandlerErrors = 0
	}

	slog.Debug("Reached max pages limit", "provider", p.name, "max_pages", p.maxPages)
	return nil
}

func (p *StoriesProvider) fetchPage(ctx context.Context, page int) ([]domain.Story, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.dataSource.LoadTopStories(ctx, page).Get()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("circuit breaker rejected request: %w", err)
		}
		return nil, err
	}
	stories, _ := out.([]domain.Story)
	return stories, nil
}
