package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/pkg/config"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func NewHTTPServer(cfg *config.Config, dataSource domain.StoriesDataSource) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           otelhttp.NewHandler(NewRouter(dataSource), "stories-api"),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func NewRouter(dataSource domain.StoriesDataSource) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())

	h := NewStoriesHandler(dataSource)
	api := r.PathPrefix("/api/stories").Subrouter()
	api.HandleFunc("/top", h.TopStories).Methods(http.MethodGet)
	api.HandleFunc("/search", h.Search).Methods(http.MethodGet)

	return r
}
