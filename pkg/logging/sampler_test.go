package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorSampler_ShouldLog(t *testing.T) {
	sampler := NewErrorSampler(10)

	assert.True(t, sampler.ShouldLog("top_stories"), "first occurrence is logged")
	for i := 2; i <= 9; i++ {
		assert.False(t, sampler.ShouldLog("top_stories"), "occurrence %d", i)
	}
	assert.True(t, sampler.ShouldLog("top_stories"), "10th occurrence is logged")
	assert.Equal(t, 10, sampler.GetCount("top_stories"))

	sampler.Reset("top_stories")
	assert.Zero(t, sampler.GetCount("top_stories"))
}

func TestErrorSampler_IndependentKeys(t *testing.T) {
	sampler := NewErrorSampler(0)

	sampler.ShouldLog("search")
	sampler.ShouldLog("top_stories")
	sampler.ShouldLog("top_stories")

	assert.Equal(t, 1, sampler.GetCount("search"))
	assert.Equal(t, 2, sampler.GetCount("top_stories"))

	sampler.ResetAll()
	assert.Zero(t, sampler.GetCount("search"))
	assert.Zero(t, sampler.GetCount("top_stories"))
}

func TestErrorSampler_Log(t *testing.T) {
	var buf bytes.Buffer
	sampler := NewErrorSampler(3).WithLogger(NewLogger(&buf, "debug", "json"))

	for i := 0; i < 6; i++ {
		sampler.Log(context.Background(), slog.LevelWarn, "search", "Search failed", "page", 1)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3, "1st, 3rd and 6th occurrences")
	assert.Contains(t, lines[2], `"occurrences":6`)
}
