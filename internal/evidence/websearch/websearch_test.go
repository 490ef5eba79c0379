package websearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"phonecheck/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(config.SearchConfig{
		BaseURL:   srv.URL,
		UserAgent: "Mozilla/5.0",
		Timeout:   2 * time.Second,
	})
}

func TestHTTPClientSearchParsesSnippets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "+61412345678 scam OR spam OR fraud", r.PostForm.Get("q"))
		require.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))

		io.WriteString(w, `<html><body>
			<div class="result">
				<a class="result__snippet" href="#">Reported as a <b>scam</b> call in AU</a>
			</div>
			<div class="result">
				<a class="result__snippet">Telemarketing complaints</a>
			</div>
		</body></html>`)
	})

	snippets, err := client.Search(context.Background(), "+61412345678 scam OR spam OR fraud")
	require.NoError(t, err)
	require.Equal(t, []string{"Reported as a scam call in AU", "Telemarketing complaints"}, snippets)
}

func TestHTTPClientSearchCapsSnippets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "<html><body>")
		for i := 0; i < 12; i++ {
			fmt.Fprintf(w, `<span class="result__snippet">snippet %d</span>`, i)
		}
		io.WriteString(w, "</body></html>")
	})

	snippets, err := client.Search(context.Background(), "query")
	require.NoError(t, err)
	require.Len(t, snippets, 5)
	require.Equal(t, "snippet 0", snippets[0])
	require.Equal(t, "snippet 4", snippets[4])
}

func TestHTTPClientSearchNoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><body><div class="no-results">nothing here</div></body></html>`)
	})

	snippets, err := client.Search(context.Background(), "query")
	require.NoError(t, err)
	require.Empty(t, snippets)
}

func TestHTTPClientSearchRejectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Search(context.Background(), "query")
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestAdapterDegradesOnFailure(t *testing.T) {
	adapter := NewAdapter(MockClient{Err: errors.New("dns failure")}, time.Second, discardLogger())

	evidence := adapter.Search(context.Background(), "+61412345678")
	require.True(t, evidence.Degraded)
	require.Empty(t, evidence.Snippets)
	require.Contains(t, evidence.Reason, "dns failure")
}

func TestAdapterPassesThroughSnippets(t *testing.T) {
	adapter := NewAdapter(MockClient{Snippets: []string{"no issues found"}}, time.Second, discardLogger())

	evidence := adapter.Search(context.Background(), "+61412345678")
	require.False(t, evidence.Degraded)
	require.Equal(t, []string{"no issues found"}, evidence.Snippets)
}
