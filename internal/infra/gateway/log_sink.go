package gateway

import (
	"context"
	"log/slog"

	"github.com/DesignerNewsStories/internal/domain"
)

// LogSink is the default downstream sink: it records synced stories in the log.
type LogSink struct {
	logger *slog.Logger
}

var _ domain.StorySink = (*LogSink)(nil)

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (g *LogSink) SyncStory(ctx context.Context, story *domain.Story) error {
	g.logger.InfoContext(ctx, "Story synced",
		"story_id", story.ID,
		"title", story.Title,
		"created_at", story.CreatedAt,
		"votes", story.VoteCount,
		"comments", story.CommentCount)
	return nil
}
