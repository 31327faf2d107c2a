package factory

import (
	"testing"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/domain/mocks"
	"github.com/DesignerNewsStories/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoriesService(t *testing.T) {
	cfg := &config.Config{APIURL: "http://localhost:8081", PayloadFormat: "plain", HTTPClientTimeout: time.Second}
	svc, err := NewStoriesService(cfg)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg.PayloadFormat = "xml"
	_, err = NewStoriesService(cfg)
	assert.EqualError(t, err, "transformer not found: xml")

	_, err = NewStoriesService(&config.Config{})
	assert.Error(t, err)
}

func TestNewProviders(t *testing.T) {
	ds := new(mocks.MockDataSource)

	providers, err := NewProviders(&config.Config{CrawlMaxPages: 2}, ds)
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "designer-news-top", providers[0].GetName())

	_, err = NewProviders(&config.Config{}, ds)
	assert.Error(t, err)
}

type nopProducer struct{ domain.EventProducer }

func TestNewStoriesCrawlerService_Validation(t *testing.T) {
	repo := struct{ domain.Repository }{}
	providers := []domain.Provider{nil}
	valid := config.Config{BatchSize: 20, WorkerPoolSize: 2, PollInterval: time.Minute}

	_, err := NewStoriesCrawlerService(repo, providers, nopProducer{}, &valid)
	assert.NoError(t, err)

	bad := valid
	bad.BatchSize = 0
	_, err = NewStoriesCrawlerService(repo, providers, nopProducer{}, &bad)
	assert.ErrorContains(t, err, "invalid batch size")

	bad = valid
	bad.WorkerPoolSize = 101
	_, err = NewStoriesCrawlerService(repo, providers, nopProducer{}, &bad)
	assert.ErrorContains(t, err, "invalid worker pool size")

	_, err = NewStoriesCrawlerService(repo, nil, nopProducer{}, &valid)
	assert.EqualError(t, err, "no providers configured")
}
