package logging

import (
	"context"
	"log/slog"
	"sync"
)

// ErrorSampler reduces log noise from repeated failures.
// The first occurrence of a key is logged, then every Nth one.
type ErrorSampler struct {
	mu       sync.Mutex
	counts   map[string]int
	interval int
	logger   *slog.Logger
}

// NewErrorSampler creates a sampler logging to slog.Default().
// An interval below 1 falls back to 10.
func NewErrorSampler(interval int) *ErrorSampler {
	if interval < 1 {
		interval = 10
	}
	return &ErrorSampler{
		counts:   make(map[string]int),
		interval: interval,
	}
}

// WithLogger sets the logger used by Log.
func (s *ErrorSampler) WithLogger(logger *slog.Logger) *ErrorSampler {
	s.logger = logger
	return s
}

// ShouldLog records an occurrence of key and reports whether it should be logged.
func (s *ErrorSampler) ShouldLog(key string) bool {
	_, ok := s.observe(key)
	return ok
}

func (s *ErrorSampler) observe(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[key]++
	n := s.counts[key]
	return n, n == 1 || n%s.interval == 0
}

// Log writes a record at level when key is sampled, adding the occurrence count.
func (s *ErrorSampler) Log(ctx context.Context, level slog.Level, key, msg string, args ...any) {
	n, ok := s.observe(key)
	if !ok {
		return
	}
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(ctx, level, msg, append(args, "occurrences", n)...)
}

// GetCount returns the current count for key.
func (s *ErrorSampler) GetCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

// Reset clears the count for key, typically after the failing operation recovers.
func (s *ErrorSampler) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
}

func (s *ErrorSampler) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = make(map[string]int)
}
