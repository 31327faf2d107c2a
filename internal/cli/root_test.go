package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithStderr(t, handler, args...)
	return out, err
}

func runWithStderr(t *testing.T, handler http.HandlerFunc, args ...string) (string, string, error) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--server", server.URL))

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestTopCommand(t *testing.T) {
	var gotPage string
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(`{"stories":[{"id":45,"title":"Plaid 2.0 was released","created_at":"2018-02-13T00:00:00Z"}]}`))
	}, "top", "--page", "2")

	require.NoError(t, err)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "45\tPlaid 2.0 was released\t2018-02-13T00:00:00Z\n", out)
}

func TestSearchCommand(t *testing.T) {
	var gotQuery string
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"stories":[{"id":876,"title":"Plaid 2.0 is bug free","created_at":"2018-02-13T00:00:00Z"}]}`))
	}, "search", "Plaid 2.0")

	require.NoError(t, err)
	assert.Equal(t, "Plaid 2.0", gotQuery)
	assert.Contains(t, out, "876\tPlaid 2.0 is bug free")
}

func TestCommand_BackendError(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, "top")

	assert.ErrorContains(t, err, "backend returned 400")
	assert.Empty(t, out)
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be called")
	}, "search")

	assert.Error(t, err)
}

func TestLogLevel_DebugWritesRequestLines(t *testing.T) {
	_, stderr, err := runWithStderr(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, "top", "--log-level", "debug")

	require.Error(t, err)
	assert.Contains(t, stderr, "HTTP request")
	assert.Contains(t, stderr, "HTTP response")
	assert.Contains(t, stderr, "Backend call failed")
}

func TestLogLevel_ErrorSuppressesWarnings(t *testing.T) {
	_, stderr, err := runWithStderr(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}, "top", "--log-level", "error")

	require.Error(t, err)
	assert.NotContains(t, stderr, "HTTP request")
	assert.NotContains(t, stderr, "Backend call failed")
	assert.NotContains(t, stderr, "level=WARN")
}
