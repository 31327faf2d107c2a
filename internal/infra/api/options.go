package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/transformer"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Options struct {
	HTTPClient  *http.Client
	Token       string
	Transformer domain.Transformer
	Logger      *slog.Logger
}

type OptionFunc func(opts *Options)

func WithHTTPClient(httpClient *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = httpClient
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) OptionFunc {
	return func(opts *Options) {
		opts.Token = token
	}
}

func WithTransformer(tr domain.Transformer) OptionFunc {
	return func(opts *Options) {
		opts.Transformer = tr
	}
}

// WithLogger sets the logger for request and response diagnostics.
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithTimeout sets the timeout on a copy of the configured client, so a
// client passed to WithHTTPClient keeps its transport and is not mutated.
func WithTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		if opts.HTTPClient == nil {
			opts.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
		}
		client := *opts.HTTPClient
		client.Timeout = timeout
		opts.HTTPClient = &client
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		HTTPClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Transformer: transformer.NewEnvelopeTransformer(),
		Logger:      slog.Default(),
	}
	for _, fn := range funcs {
		fn(opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}
