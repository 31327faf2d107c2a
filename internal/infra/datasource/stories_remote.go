// Package datasource maps Designer News backend responses to domain Results.
package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/metrics"
	"github.com/DesignerNewsStories/pkg/logging"
)

const (
	opTopStories = "top_stories"
	opSearch     = "search"
)

// StoriesRemoteDataSource issues exactly one backend call per operation.
// It holds no mutable state besides the log sampler and is safe for concurrent use.
type StoriesRemoteDataSource struct {
	service domain.StoriesService
	sampler *logging.ErrorSampler
}

var _ domain.StoriesDataSource = (*StoriesRemoteDataSource)(nil)

func NewStoriesRemoteDataSource(service domain.StoriesService) *StoriesRemoteDataSource {
	return &StoriesRemoteDataSource{
		service: service,
		sampler: logging.NewErrorSampler(10),
	}
}

// WithLogger routes failure logs to logger instead of slog.Default().
func (d *StoriesRemoteDataSource) WithLogger(logger *slog.Logger) *StoriesRemoteDataSource {
	d.sampler.WithLogger(logger)
	return d
}

func (d *StoriesRemoteDataSource) LoadTopStories(ctx context.Context, page int) domain.Result[[]domain.Story] {
	return d.call(ctx, opTopStories, domain.ErrLoadTopStories, func() (*domain.APIResponse[[]domain.Story], error) {
		return d.service.GetTopStories(ctx, page)
	}, "page", page)
}

func (d *StoriesRemoteDataSource) Search(ctx context.Context, query string, page int) domain.Result[[]domain.Story] {
	return d.call(ctx, opSearch, domain.ErrSearchStories, func() (*domain.APIResponse[[]domain.Story], error) {
		return d.service.Search(ctx, query, page)
	}, "query", query, "page", page)
}

func (d *StoriesRemoteDataSource) call(
	ctx context.Context,
	op string,
	sentinel error,
	request func() (*domain.APIResponse[[]domain.Story], error),
	logArgs ...any,
) domain.Result[[]domain.Story] {
	start := time.Now()
	resp, err := request()
	metrics.DataSourceDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	result := toResult(resp, err, sentinel)
	if result.IsError() {
		metrics.DataSourceRequests.WithLabelValues(op, "error").Inc()
		d.sampler.Log(ctx, slog.LevelWarn, op, "Backend call failed",
			append(logArgs, "operation", op, "error", result.Err())...)
		return result
	}

	d.sampler.Reset(op)
	metrics.DataSourceRequests.WithLabelValues(op, "success").Inc()
	return result
}

// toResult turns a backend outcome into a Result. Only a 2xx response with a body is a Success.
func toResult(resp *domain.APIResponse[[]domain.Story], err error, sentinel error) domain.Result[[]domain.Story] {
	if err != nil {
		return domain.Failure[[]domain.Story](fmt.Errorf("%w: %w", sentinel, err))
	}
	if resp == nil {
		return domain.Failure[[]domain.Story](fmt.Errorf("%w: no response", sentinel))
	}
	if resp.IsSuccessful() && resp.Body != nil {
		return domain.Success(*resp.Body)
	}
	return domain.Failure[[]domain.Story](fmt.Errorf("%w: %w", sentinel, &domain.HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       resp.ErrorBody,
	}))
}
