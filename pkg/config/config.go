package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// Designer News backend
	APIURL            string
	APIToken          string
	PayloadFormat     string
	HTTPClientTimeout time.Duration

	// Crawler
	CrawlMaxPages  int
	PollInterval   time.Duration
	BatchSize      int
	WorkerPoolSize int

	MongoURI    string
	MongoDBName string
	MongoColl   string

	KafkaBrokers  []string
	KafkaTopic    string
	KafkaDLQTopic string
	KafkaGroupID  string

	OTelEnabled bool
	LogLevel    string
	LogFormat   string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		APIURL:            getEnv("DN_API_URL", "https://api.designernews.co"),
		APIToken:          getEnv("DN_API_TOKEN", ""),
		PayloadFormat:     getEnv("DN_PAYLOAD_FORMAT", "envelope"),
		HTTPClientTimeout: getDurationEnv("HTTP_CLIENT_TIMEOUT", 10*time.Second),
		CrawlMaxPages:     getIntEnv("CRAWL_MAX_PAGES", 5),
		PollInterval:      getDurationEnv("POLL_INTERVAL", 5*time.Minute),
		BatchSize:         getIntEnv("BATCH_SIZE", 20),
		WorkerPoolSize:    getIntEnv("WORKER_POOL_SIZE", 2),
		MongoURI:          getEnv("MONGO_URI", "mongodb://mongodb:27017"),
		MongoDBName:       getEnv("MONGO_DB_NAME", "designer_news"),
		MongoColl:         getEnv("MONGO_COLLECTION", "stories"),
		KafkaBrokers:      splitList(getEnv("KAFKA_BROKERS", "kafka:29092")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "stories"),
		KafkaDLQTopic:     getEnv("KAFKA_DLQ_TOPIC", "stories_dlq"),
		KafkaGroupID:      getEnv("KAFKA_GROUP_ID", "story-sync-group"),
		OTelEnabled:       getBoolEnv("OTEL_ENABLED", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		// Duration string first ("1m", "60s"), then plain seconds
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if i, err := strconv.Atoi(value); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
