package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

const pageSize = 2

type story struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	CreatedAt    string `json:"created_at"`
	URL          string `json:"url,omitempty"`
	CommentCount int    `json:"comment_count"`
	VoteCount    int    `json:"vote_count"`
}

func cannedStories() []story {
	now := time.Now().UTC()
	titles := []string{
		"Plaid 2.0 was released",
		"Plaid 2.0 is bug free",
		"Designing with motion",
		"A field guide to color",
		"Type scales that work",
	}
	out := make([]story, 0, len(titles))
	for i, title := range titles {
		out = append(out, story{
			ID:           int64(100 + i),
			Title:        title,
			CreatedAt:    now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
			URL:          "https://example.com/stories/" + strconv.Itoa(100+i),
			CommentCount: i * 3,
			VoteCount:    10 - i,
		})
	}
	return out
}

func paginate(all []story, r *http.Request) ([]story, bool) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			return nil, false
		}
		page = p
	}
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []story{}, true
	}
	return all[start:min(start+pageSize, len(all))], true
}

func writeEnvelope(w http.ResponseWriter, stories []story) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"stories": stories}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func main() {
	r := mux.NewRouter()

	r.HandleFunc("/api/v2/stories", func(w http.ResponseWriter, r *http.Request) {
		page, ok := paginate(cannedStories(), r)
		if !ok {
			http.Error(w, `{"error":"invalid page"}`, http.StatusBadRequest)
			return
		}
		writeEnvelope(w, page)
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/v2/stories/search", func(w http.ResponseWriter, r *http.Request) {
		query := strings.ToLower(r.URL.Query().Get("query"))
		if query == "" {
			http.Error(w, `{"error":"query is required"}`, http.StatusBadRequest)
			return
		}
		var matches []story
		for _, s := range cannedStories() {
			if strings.Contains(strings.ToLower(s.Title), query) {
				matches = append(matches, s)
			}
		}
		page, ok := paginate(matches, r)
		if !ok {
			http.Error(w, `{"error":"invalid page"}`, http.StatusBadRequest)
			return
		}
		writeEnvelope(w, page)
	}).Methods(http.MethodGet)

	slog.Info("Mock Designer News API running on :8081")
	if err := http.ListenAndServe(":8081", r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
