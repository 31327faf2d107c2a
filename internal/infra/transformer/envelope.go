package transformer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/DesignerNewsStories/internal/domain"
)

const EnvelopeName = "envelope"

// storyPayload is the wire shape of a Designer News v2 story.
type storyPayload struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	CreatedAt    string `json:"created_at"`
	URL          string `json:"url"`
	Hostname     string `json:"hostname"`
	CommentCount int    `json:"comment_count"`
	VoteCount    int    `json:"vote_count"`
	Links        struct {
		User int64 `json:"user"`
	} `json:"links"`
}

// EnvelopeResponse is the v2 API wrapper around story lists.
type EnvelopeResponse struct {
	Stories []storyPayload `json:"stories"`
}

type EnvelopeTransformer struct{}

func NewEnvelopeTransformer() *EnvelopeTransformer {
	return &EnvelopeTransformer{}
}

func (t *EnvelopeTransformer) Transform(reader io.Reader) ([]domain.Story, error) {
	var resp *EnvelopeResponse
	if err := decode(reader, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode stories envelope: %w", err)
	}
	if resp == nil || resp.Stories == nil {
		return nil, nil
	}
	return normalizeAll(resp.Stories)
}

func decode(reader io.Reader, v any) error {
	err := json.NewDecoder(reader).Decode(v)
	if errors.Is(err, io.EOF) {
		// Empty body, leave v untouched
		return nil
	}
	return err
}
