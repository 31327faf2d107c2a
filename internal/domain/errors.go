package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrLoadTopStories = errors.New("error loading top stories")
	ErrSearchStories  = errors.New("error searching stories")
	ErrUnknown        = errors.New("unknown error")
	ErrEmptyBody      = errors.New("empty response body")
)

// HTTPError describes a backend response that did not carry a usable payload.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	// Status is the full status line text, e.g. "400 Bad Request"
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.StatusCode >= 200 && e.StatusCode < 300 {
		return fmt.Sprintf("backend returned %s: %s", status, ErrEmptyBody)
	}
	return "backend returned " + status
}

// Unwrap lets errors.Is match ErrEmptyBody for successful responses without a payload.
func (e *HTTPError) Unwrap() error {
	if e.StatusCode >= 200 && e.StatusCode < 300 {
		return ErrEmptyBody
	}
	return nil
}
