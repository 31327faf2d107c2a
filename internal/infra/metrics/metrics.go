package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DataSourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_datasource_requests_total",
			Help: "Data source calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	DataSourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stories_datasource_duration_seconds",
			Help:    "Duration of backend calls made by the data source",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoriesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_ingested_total",
			Help: "The total number of stories ingested",
		},
		[]string{"source", "status"},
	)

	StoriesDuplicatesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_duplicates_skipped_total",
			Help: "The total number of stories skipped because they are unchanged",
		},
		[]string{"source"},
	)

	CrawlBatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crawl_batch_duration_seconds",
			Help:    "Duration of processing one crawled page",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	StoriesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_published_total",
			Help: "Stories published to Kafka",
		},
		[]string{"source"},
	)

	PublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stories_publish_errors_total",
			Help: "Failed Kafka publish batches",
		},
		[]string{"source"},
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stories_publish_duration_seconds",
			Help:    "Duration of Kafka publish batches",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	StoryAge = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_age_seconds",
			Help:    "Age of crawled stories at ingestion time",
			Buckets: prometheus.ExponentialBuckets(60, 4, 10),
		},
		[]string{"source"},
	)

	ArchiveNewestStory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "archive_newest_story_timestamp_seconds",
			Help: "Creation time of the newest archived story, read at crawl start",
		},
	)

	WorkerActiveCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_active_count",
			Help: "Number of workers currently processing jobs",
		},
	)

	DLQMessagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dlq_messages_published_total",
			Help: "Total number of messages published to DLQ",
		},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "story_sync_duration_seconds",
			Help:    "Duration of downstream story synchronization",
			Buckets: prometheus.DefBuckets,
		},
	)

	SyncErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "story_sync_errors_total",
			Help: "Total number of downstream sync errors",
		},
	)

	SyncSuccess = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "story_sync_processed_total",
			Help: "Total number of stories successfully synced downstream",
		},
	)
)
