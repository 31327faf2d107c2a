package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/transformer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoStories = `{"stories":[
	{"id":45,"title":"Plaid 2.0 was released","created_at":"2018-02-13T00:00:00Z"},
	{"id":876,"title":"Plaid 2.0 is bug free","created_at":"2018-02-13T00:00:00Z"}
]}`

func newTestService(t *testing.T, handler http.HandlerFunc, funcs ...OptionFunc) *DesignerNewsService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewDesignerNewsService(server.URL, funcs...)
	require.NoError(t, err)
	return svc
}

func TestGetTopStories_Success(t *testing.T) {
	var gotPath, gotPage, gotAuth string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(twoStories))
	}, WithToken("secret"))

	resp, err := svc.GetTopStories(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/stories", gotPath)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.True(t, resp.IsSuccessful())
	require.NotNil(t, resp.Body)

	created := time.Date(2018, time.February, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []domain.Story{
		{ID: 45, Title: "Plaid 2.0 was released", CreatedAt: created},
		{ID: 876, Title: "Plaid 2.0 is bug free", CreatedAt: created},
	}, *resp.Body)
}

func TestSearch_SendsQueryAndPage(t *testing.T) {
	var gotPath, gotQuery, gotPage string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(twoStories))
	})

	resp, err := svc.Search(context.Background(), "Plaid 2.0", 2)
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/stories/search", gotPath)
	assert.Equal(t, "Plaid 2.0", gotQuery)
	assert.Equal(t, "2", gotPage)
	require.NotNil(t, resp.Body)
	assert.Len(t, *resp.Body, 2)
}

func TestGet_ErrorStatusKeepsBody(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad page"}`))
	})

	resp, err := svc.GetTopStories(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, resp.IsSuccessful())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, resp.Body)
	assert.JSONEq(t, `{"error":"bad page"}`, string(resp.ErrorBody))
}

func TestGet_NoContent(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := svc.GetTopStories(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccessful())
	assert.Nil(t, resp.Body)
}

func TestGet_DecodeFailure(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1}]`))
	})

	_, err := svc.GetTopStories(context.Background(), 1)
	assert.ErrorContains(t, err, "failed to decode response")
}

func TestGet_PlainTransformer(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"title":"a"}]`))
	}, WithTransformer(transformer.NewPlainTransformer()))

	resp, err := svc.GetTopStories(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, resp.Body)
	assert.Equal(t, []domain.Story{{ID: 1, Title: "a"}}, *resp.Body)
}

func TestGet_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	svc, err := NewDesignerNewsService(server.URL)
	require.NoError(t, err)
	server.Close()

	resp, err := svc.GetTopStories(context.Background(), 1)
	assert.Nil(t, resp)
	assert.Error(t, err)
}

func TestNewDesignerNewsService_BaseURL(t *testing.T) {
	_, err := NewDesignerNewsService("not a url")
	assert.Error(t, err)

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"stories":[]}`))
	}))
	defer server.Close()

	svc, err := NewDesignerNewsService(server.URL + "/proxy")
	require.NoError(t, err)
	_, err = svc.GetTopStories(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "/proxy/api/v2/stories", gotPath)
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

func TestWithHTTPClient_KeepsTransportUnderTimeout(t *testing.T) {
	rt := &countingTransport{}
	custom := &http.Client{Transport: rt}

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(twoStories))
	}, WithHTTPClient(custom), WithTimeout(3*time.Second))

	_, err := svc.GetTopStories(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int32(1), rt.calls.Load())
	assert.Same(t, rt, svc.client.Transport)
	assert.Equal(t, 3*time.Second, svc.client.Timeout)
	assert.Zero(t, custom.Timeout, "caller's client must not be mutated")
}

func TestWithTimeout_BeforeHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Minute}
	opts := NewOptions(WithTimeout(time.Second), WithHTTPClient(custom))

	assert.Same(t, custom, opts.HTTPClient)
}

func TestWithLogger_ReceivesRequestLines(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, WithLogger(logger))

	_, err := svc.GetTopStories(context.Background(), 1)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "HTTP request")
	assert.Contains(t, buf.String(), "status_code=404")
}
