// Package api implements the Designer News backend service over HTTP.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DesignerNewsStories/internal/domain"
)

const (
	topStoriesPath = "api/v2/stories"
	searchPath     = "api/v2/stories/search"

	// Upper bound on error bodies kept for diagnostics.
	maxErrorBody = 64 << 10
)

// DesignerNewsService is an HTTP client for the Designer News API.
type DesignerNewsService struct {
	baseURL     *url.URL
	client      *http.Client
	token       string
	transformer domain.Transformer
	logger      *slog.Logger
}

var _ domain.StoriesService = (*DesignerNewsService)(nil)

func NewDesignerNewsService(baseURL string, funcs ...OptionFunc) (*DesignerNewsService, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	opts := NewOptions(funcs...)
	return &DesignerNewsService{
		baseURL:     u,
		client:      opts.HTTPClient,
		token:       opts.Token,
		transformer: opts.Transformer,
		logger:      opts.Logger,
	}, nil
}

func (s *DesignerNewsService) GetTopStories(ctx context.Context, page int) (*domain.APIResponse[[]domain.Story], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return s.get(ctx, topStoriesPath, params)
}

func (s *DesignerNewsService) Search(ctx context.Context, query string, page int) (*domain.APIResponse[[]domain.Story], error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	return s.get(ctx, searchPath, params)
}

func (s *DesignerNewsService) get(ctx context.Context, path string, params url.Values) (*domain.APIResponse[[]domain.Story], error) {
	endpoint := s.baseURL.ResolveReference(&url.URL{Path: path, RawQuery: params.Encode()})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	s.logger.Debug("HTTP request", "method", req.Method, "url", endpoint.String())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint.Path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn("Failed to close response body", "error", err)
		}
	}()

	s.logger.Debug("HTTP response", "url", endpoint.String(), "status_code", resp.StatusCode)

	out := &domain.APIResponse[[]domain.Story]{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	if !out.IsSuccessful() {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			s.logger.Warn("Failed to read error body", "status_code", resp.StatusCode, "error", err)
		}
		out.ErrorBody = body
		return out, nil
	}

	stories, err := s.transformer.Transform(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", endpoint.Path, err)
	}
	if stories != nil {
		out.Body = &stories
	}
	return out, nil
}
