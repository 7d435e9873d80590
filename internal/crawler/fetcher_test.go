package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var fetcherTestPage = "<html><body><article>" +
	strings.Repeat("A perfectly ordinary paragraph of page text. ", 10) +
	"</article></body></html>"

func fetcherTestConfig(proxies ...string) Config {
	return Config{
		UserAgent:      "ogtool-test",
		ProxyEndpoints: proxies,
	}
}

// TestFetchDirect retrieves a page without touching the proxy chain.
func TestFetchDirect(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(fetcherTestPage))
	}))
	defer srv.Close()

	f := NewCollyFetcher(fetcherTestConfig(), nil)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, body, "ordinary paragraph")
}

// TestFetchProxyFallback falls through to a proxy endpoint when the direct
// request keeps failing.
func TestFetchProxyFallback(t *testing.T) {
	t.Parallel()

	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer direct.Close()

	var proxied bool
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxied = true
		require.Equal(t, direct.URL, r.URL.Query().Get("url"))
		_, _ = w.Write([]byte(fetcherTestPage))
	}))
	defer proxy.Close()

	f := NewCollyFetcher(fetcherTestConfig(proxy.URL+"/?url="), nil)
	body, err := f.Fetch(context.Background(), direct.URL)
	require.NoError(t, err)
	require.True(t, proxied)
	require.Contains(t, body, "ordinary paragraph")
}

// TestFetchAllStrategiesFail returns a FetchError carrying the attempt count.
func TestFetchAllStrategiesFail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewCollyFetcher(fetcherTestConfig(srv.URL+"/?url="), nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, srv.URL, fetchErr.URL)
	require.Equal(t, 2, fetchErr.Attempts)
}

// TestFetchAcceptsSmallDirectBody trusts a direct 2xx even when the page is
// tiny; only proxy responses carry the stub-body suspicion.
func TestFetchAcceptsSmallDirectBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewCollyFetcher(fetcherTestConfig("http://127.0.0.1:1/?url="), nil)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, body, "ok")
}

// TestFetchRejectsTinyProxyBodies treats a proxy 200 with a stub body as a
// failure so proxy error pages never masquerade as content.
func TestFetchRejectsTinyProxyBodies(t *testing.T) {
	t.Parallel()

	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer direct.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer proxy.Close()

	f := NewCollyFetcher(fetcherTestConfig(proxy.URL+"/?url="), nil)
	_, err := f.Fetch(context.Background(), direct.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "body too small")
}

// TestFetchCanceledContext stops before issuing any request.
func TestFetchCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewCollyFetcher(fetcherTestConfig(), nil)
	_, err := f.Fetch(ctx, "https://example.com/")
	require.ErrorIs(t, err, context.Canceled)
}
