package domain

import (
	"context"
	"io"
)

// APIResponse is the raw outcome of a backend call that reached the server.
type APIResponse[T any] struct {
	StatusCode int
	Status     string
	// Body is nil when the response carried no payload or was not successful.
	Body *T
	// ErrorBody holds the raw body of a non-2xx response.
	ErrorBody []byte
}

// IsSuccessful reports whether the status code is in the 2xx range.
func (r *APIResponse[T]) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StoriesService is the Designer News backend API.
// Implementations return an error only when no HTTP response could be obtained or decoded.
type StoriesService interface {
	GetTopStories(ctx context.Context, page int) (*APIResponse[[]Story], error)
	Search(ctx context.Context, query string, page int) (*APIResponse[[]Story], error)
}

// StoriesDataSource exposes backend story operations as Results.
type StoriesDataSource interface {
	LoadTopStories(ctx context.Context, page int) Result[[]Story]
	Search(ctx context.Context, query string, page int) Result[[]Story]
}

// Transformer decodes a backend payload into stories.
type Transformer interface {
	Transform(reader io.Reader) ([]Story, error)
}

// StoryWriter handles story persistence operations.
type StoryWriter interface {
	BulkUpsert(ctx context.Context, stories []Story) error
}

// StoryReader handles story retrieval operations.
type StoryReader interface {
	GetLatest(ctx context.Context) (*Story, error)
}

// HashReader handles content hash retrieval for deduplication.
type HashReader interface {
	GetContentHashes(ctx context.Context, ids []int64) (map[int64]string, error)
}

// Repository is the full archive contract.
type Repository interface {
	StoryWriter
	StoryReader
	HashReader
}

// Provider crawls a story source page by page.
type Provider interface {
	Crawl(ctx context.Context, handler func([]Story) error) error
	GetName() string
}

// EventProducer publishes story events to a queue.
type EventProducer interface {
	Publish(ctx context.Context, story *Story) error
	PublishBatch(ctx context.Context, stories []Story) error
	Close() error
}

// StorySink receives synced stories downstream of the queue.
type StorySink interface {
	SyncStory(ctx context.Context, story *Story) error
}
