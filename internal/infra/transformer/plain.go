package transformer

import (
	"fmt"
	"io"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
)

const PlainName = "plain"

// PlainTransformer decodes a bare JSON array of stories.
type PlainTransformer struct{}

func NewPlainTransformer() *PlainTransformer {
	return &PlainTransformer{}
}

func (t *PlainTransformer) Transform(reader io.Reader) ([]domain.Story, error) {
	var payload []storyPayload
	if err := decode(reader, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode stories: %w", err)
	}
	if payload == nil {
		return nil, nil
	}
	return normalizeAll(payload)
}

func normalizeAll(payload []storyPayload) ([]domain.Story, error) {
	stories := make([]domain.Story, 0, len(payload))
	for _, p := range payload {
		s, err := normalize(p)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, nil
}

func normalize(p storyPayload) (domain.Story, error) {
	var created time.Time
	if p.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			return domain.Story{}, fmt.Errorf("story %d has invalid created_at %q: %w", p.ID, p.CreatedAt, err)
		}
		created = t
	}

	return domain.Story{
		ID:           p.ID,
		Title:        p.Title,
		CreatedAt:    created,
		URL:          p.URL,
		Hostname:     p.Hostname,
		CommentCount: p.CommentCount,
		VoteCount:    p.VoteCount,
		UserID:       p.Links.User,
	}, nil
}
