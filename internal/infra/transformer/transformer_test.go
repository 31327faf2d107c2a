package transformer

import (
	"strings"
	"testing"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2018, time.February, 13, 0, 0, 0, 0, time.UTC)

func TestEnvelopeTransformer(t *testing.T) {
	payload := `{"stories":[
		{"id":45,"title":"Plaid 2.0 was released","created_at":"2018-02-13T00:00:00Z","vote_count":12,"links":{"user":7}},
		{"id":876,"title":"Plaid 2.0 is bug free","created_at":"2018-02-13T00:00:00Z","url":"https://plaid.app"}
	]}`

	stories, err := NewEnvelopeTransformer().Transform(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, stories, 2)

	assert.Equal(t, domain.Story{ID: 45, Title: "Plaid 2.0 was released", CreatedAt: created, VoteCount: 12, UserID: 7}, stories[0])
	assert.Equal(t, int64(876), stories[1].ID)
	assert.Equal(t, "https://plaid.app", stories[1].URL)
}

func TestEnvelopeTransformer_EmptyBodies(t *testing.T) {
	for _, body := range []string{"", "null", "{}", `{"stories":null}`} {
		stories, err := NewEnvelopeTransformer().Transform(strings.NewReader(body))
		assert.NoError(t, err, body)
		assert.Nil(t, stories, body)
	}

	stories, err := NewEnvelopeTransformer().Transform(strings.NewReader(`{"stories":[]}`))
	assert.NoError(t, err)
	assert.NotNil(t, stories)
	assert.Empty(t, stories)
}

func TestPlainTransformer(t *testing.T) {
	stories, err := NewPlainTransformer().Transform(strings.NewReader(`[{"id":1,"title":"a"}]`))
	require.NoError(t, err)
	assert.Equal(t, []domain.Story{{ID: 1, Title: "a"}}, stories)

	stories, err = NewPlainTransformer().Transform(strings.NewReader("null"))
	assert.NoError(t, err)
	assert.Nil(t, stories)
}

func TestTransform_Malformed(t *testing.T) {
	_, err := NewPlainTransformer().Transform(strings.NewReader(`{"id":1}`))
	assert.Error(t, err)

	_, err = NewEnvelopeTransformer().Transform(strings.NewReader(`{"stories":[{"id":1,"created_at":"yesterday"}]}`))
	assert.ErrorContains(t, err, "invalid created_at")
}

func TestGetTransformer(t *testing.T) {
	tr, err := GetTransformer("plain")
	require.NoError(t, err)
	assert.IsType(t, &PlainTransformer{}, tr)

	tr, err = GetTransformer("")
	require.NoError(t, err)
	assert.IsType(t, &EnvelopeTransformer{}, tr)

	_, err = GetTransformer("rss")
	assert.EqualError(t, err, "transformer not found: rss")
}
