package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// StoriesCrawlerService periodically crawls providers and archives what changed.
type StoriesCrawlerService struct {
	repo            domain.Repository
	providers       []domain.Provider
	eventProducer   domain.EventProducer
	interval        time.Duration
	batchSize       int
	workerCount     int
	jobs            chan job
	wg              sync.WaitGroup
	activeProviders sync.Map
	now             func() time.Time
}

type job struct {
	provider domain.Provider
}

func NewStoriesCrawlerService(
	repo domain.Repository,
	providers []domain.Provider,
	eventProducer domain.EventProducer,
	interval time.Duration,
	batchSize int,
	workerCount int,
) *StoriesCrawlerService {
	return &StoriesCrawlerService{
		repo:          repo,
		providers:     providers,
		eventProducer: eventProducer,
		interval:      interval,
		batchSize:     batchSize,
		workerCount:   workerCount,
		jobs:          make(chan job, workerCount*2),
		now:           time.Now,
	}
}

// Start blocks until ctx is cancelled and all workers have drained.
func (s *StoriesCrawlerService) Start(ctx context.Context) {
	slog.Info("Starting stories crawler service", "interval", s.interval, "workers", s.workerCount)

	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	var providersWg sync.WaitGroup
	for _, provider := range s.providers {
		slog.Info("Starting provider loop", "provider", provider.GetName())
		providersWg.Add(1)
		go s.runProviderLoop(ctx, provider, &providersWg)
	}

	<-ctx.Done()
	slog.Info("Context cancelled, stopping stories crawler service...")

	providersWg.Wait()
	slog.Info("All providers stopped")

	close(s.jobs)

	s.wg.Wait()
	slog.Info("All workers stopped")
}

func (s *StoriesCrawlerService) runProviderLoop(ctx context.Context, p domain.Provider, wg *sync.WaitGroup) {
	defer wg.Done()

	select {
	case s.jobs <- job{provider: p}:
	case <-ctx.Done():
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case s.jobs <- job{provider: p}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *StoriesCrawlerService) worker(ctx context.Context, id int) {
	defer s.wg.Done()
	slog.Info("Worker started", "worker_id", id)

	for j := range s.jobs {
		name := j.provider.GetName()
		if _, loaded := s.activeProviders.LoadOrStore(name, true); loaded {
			slog.Warn("Skipping concurrent run", "provider", name, "worker_id", id)
			continue
		}

		metrics.WorkerActiveCount.Inc()
		func() {
			defer s.activeProviders.Delete(name)
			s.processProvider(ctx, j.provider)
		}()
		metrics.WorkerActiveCount.Dec()
	}
	slog.Info("Worker stopped", "worker_id", id)
}

func (s *StoriesCrawlerService) processProvider(ctx context.Context, provider domain.Provider) {
	ctx, span := otel.Tracer("stories-crawler").Start(ctx, "processProvider")
	defer span.End()

	name := provider.GetName()
	span.SetAttributes(attribute.String("provider", name))
	slog.Debug("Starting crawl for provider", "provider", name)
	s.recordArchiveHead(ctx, name)

	err := provider.Crawl(ctx, func(stories []domain.Story) error {
		return s.processPage(ctx, name, stories)
	})
	if err != nil {
		span.RecordError(err)
		slog.Error("Crawl failed", "provider", name, "error", err)
		metrics.StoriesIngested.WithLabelValues(name, "error_crawl").Inc()
	}
}

// recordArchiveHead reports the newest archived story. Failures are logged and never stop the crawl.
func (s *StoriesCrawlerService) recordArchiveHead(ctx context.Context, source string) {
	latest, err := s.repo.GetLatest(ctx)
	if err != nil {
		slog.Warn("Failed to read newest archived story", "provider", source, "error", err)
		return
	}
	if latest == nil {
		slog.Info("Archive is empty, crawling from scratch", "provider", source)
		return
	}
	metrics.ArchiveNewestStory.Set(float64(latest.CreatedAt.Unix()))
	slog.Debug("Newest archived story",
		"provider", source,
		"id", latest.ID,
		"created_at", latest.CreatedAt,
		"age", s.now().Sub(latest.CreatedAt))
}

// processPage splits a crawled page into batches of at most batchSize stories.
func (s *StoriesCrawlerService) processPage(ctx context.Context, source string, stories []domain.Story) error {
	size := s.batchSize
	if size < 1 {
		size = len(stories)
	}
	for start := 0; start < len(stories); start += size {
		end := min(start+size, len(stories))
		if err := s.processBatch(ctx, source, stories[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *StoriesCrawlerService) processBatch(ctx context.Context, source string, batch []domain.Story) error {
	start := s.now()

	// Dedup within batch, copying so the caller's slice is left alone
	stories := make([]domain.Story, 0, len(batch))
	seen := make(map[int64]bool, len(batch))
	for _, st := range batch {
		if !seen[st.ID] {
			seen[st.ID] = true
			stories = append(stories, st)
		}
	}
	if len(stories) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(stories))
	for i := range stories {
		stories[i].ContentHash = stories[i].ComputeHash()
		stories[i].FetchedAt = start
		ids = append(ids, stories[i].ID)
	}

	existingHashes, err := s.repo.GetContentHashes(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch hashes: %w", err)
	}

	var changed []domain.Story
	skipped := 0
	for _, st := range stories {
		oldHash, exists := existingHashes[st.ID]
		switch {
		case !exists:
			slog.Info("Story new", "provider", source, "id", st.ID)
			changed = append(changed, st)
		case oldHash != st.ContentHash:
			slog.Info("Story changed", "provider", source, "id", st.ID)
			changed = append(changed, st)
		default:
			skipped++
		}
	}

	if skipped > 0 {
		metrics.StoriesDuplicatesSkipped.WithLabelValues(source).Add(float64(skipped))
	}
	for _, st := range stories {
		if !st.CreatedAt.IsZero() {
			metrics.StoryAge.WithLabelValues(source).Observe(start.Sub(st.CreatedAt).Seconds())
		}
	}

	if err := s.repo.BulkUpsert(ctx, stories); err != nil {
		return fmt.Errorf("bulk upsert failed: %w", err)
	}
	metrics.StoriesIngested.WithLabelValues(source, "success").Add(float64(len(stories)))
	metrics.CrawlBatchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())

	if len(changed) == 0 {
		return nil
	}

	slog.Info("Publishing changed stories", "count", len(changed), "provider", source)
	pubStart := time.Now()
	err = s.eventProducer.PublishBatch(ctx, changed)
	metrics.PublishDuration.WithLabelValues(source).Observe(time.Since(pubStart).Seconds())
	if err != nil {
		// Stories are already archived, the next changed revision will be published
		slog.Error("Error publishing story batch", "count", len(changed), "error", err)
		metrics.PublishErrors.WithLabelValues(source).Inc()
		return nil
	}
	metrics.StoriesPublished.WithLabelValues(source).Add(float64(len(changed)))
	return nil
}
