package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Story represents a Designer News story as returned by the backend.
type Story struct {
	ID           int64     `json:"id" bson:"_id"`
	Title        string    `json:"title" bson:"title"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	URL          string    `json:"url,omitempty" bson:"url,omitempty"`
	Hostname     string    `json:"hostname,omitempty" bson:"hostname,omitempty"`
	CommentCount int       `json:"comment_count,omitempty" bson:"comment_count"`
	VoteCount    int       `json:"vote_count,omitempty" bson:"vote_count"`
	UserID       int64     `json:"user_id,omitempty" bson:"user_id,omitempty"`

	// Set by the crawler before archiving, never sent by the backend.
	ContentHash string    `json:"-" bson:"content_hash"`
	FetchedAt   time.Time `json:"-" bson:"fetched_at"`
}

// Equal reports whether two stories carry the same payload.
// Timestamps are compared as instants so that location differences do not matter.
func (s Story) Equal(other Story) bool {
	return s.ID == other.ID &&
		s.Title == other.Title &&
		s.CreatedAt.Equal(other.CreatedAt) &&
		s.URL == other.URL &&
		s.Hostname == other.Hostname &&
		s.CommentCount == other.CommentCount &&
		s.VoteCount == other.VoteCount &&
		s.UserID == other.UserID
}

// ComputeHash generates a deterministic hash of the story's content.
// Vote and comment counts are included so that activity on a story counts as a change.
func (s *Story) ComputeHash() string {
	hasher := sha256.New()
	hasher.Write([]byte(strconv.FormatInt(s.ID, 10)))
	hasher.Write([]byte(s.Title))
	hasher.Write([]byte(s.URL))
	hasher.Write([]byte(s.CreatedAt.UTC().Format(time.RFC3339)))
	hasher.Write([]byte(strconv.Itoa(s.CommentCount)))
	hasher.Write([]byte(strconv.Itoa(s.VoteCount)))
	return hex.EncodeToString(hasher.Sum(nil))
}
