package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/go-playground/validator/v10"
)

type topStoriesParams struct {
	Page int `validate:"min=1"`
}

type searchParams struct {
	Query string `validate:"required"`
	Page  int    `validate:"min=1"`
}

// ErrorPayload is returned for every non-200 API response.
type ErrorPayload struct {
	Error          string `json:"error"`
	Message        string `json:"message,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// StoriesHandler serves the data source over JSON. Every request reaches the backend.
type StoriesHandler struct {
	dataSource domain.StoriesDataSource
	validate   *validator.Validate
}

func NewStoriesHandler(dataSource domain.StoriesDataSource) *StoriesHandler {
	return &StoriesHandler{
		dataSource: dataSource,
		validate:   validator.New(),
	}
}

func (h *StoriesHandler) TopStories(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorPayload{Error: "invalid_input", Message: "page must be an integer"})
		return
	}
	params := topStoriesParams{Page: page}
	if err := h.validate.Struct(params); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorPayload{Error: "invalid_input", Message: err.Error()})
		return
	}

	writeResult(w, h.dataSource.LoadTopStories(r.Context(), params.Page))
}

func (h *StoriesHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorPayload{Error: "invalid_input", Message: "page must be an integer"})
		return
	}
	params := searchParams{Query: r.URL.Query().Get("query"), Page: page}
	if err := h.validate.Struct(params); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorPayload{Error: "invalid_input", Message: err.Error()})
		return
	}

	writeResult(w, h.dataSource.Search(r.Context(), params.Query, params.Page))
}

// parsePage reads the page query parameter, defaulting to 1.
func parsePage(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	return page, err == nil
}

func writeResult(w http.ResponseWriter, result domain.Result[[]domain.Story]) {
	stories, err := result.Get()
	if err == nil {
		if stories == nil {
			stories = []domain.Story{}
		}
		writeJSON(w, http.StatusOK, stories)
		return
	}

	payload := ErrorPayload{Error: "upstream_error", Message: err.Error()}
	var httpErr *domain.HTTPError
	if errors.As(err, &httpErr) {
		payload.UpstreamStatus = httpErr.StatusCode
	}
	writeJSON(w, http.StatusBadGateway, payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}
