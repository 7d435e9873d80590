package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// minUsableBody is the smallest response body treated as a real page; proxy
// endpoints tend to return tiny error stubs with a 200 status.
const minUsableBody = 100

// browser-like headers sent with every attempt; some sites refuse requests
// that do not look like a real client.
var defaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
}

// CollyFetcher implements Fetcher using the Colly collector. A direct GET is
// tried first; on failure the URL is rewritten through each configured proxy
// endpoint in order, stopping at the first usable body.
type CollyFetcher struct {
	baseCollector *colly.Collector
	proxies       []string
	timeout       time.Duration
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based Fetcher.
func NewCollyFetcher(cfg Config, logger *zap.Logger) *CollyFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	base := colly.NewCollector(
		colly.Async(true),
		colly.UserAgent(cfg.UserAgent),
	)
	base.AllowURLRevisit = true
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(timeout)

	return &CollyFetcher{
		baseCollector: base,
		proxies:       append([]string(nil), cfg.ProxyEndpoints...),
		timeout:       timeout,
		logger:        logger,
	}
}

// Fetch retrieves a page, falling back through the proxy chain. It returns a
// *FetchError once every strategy has failed.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	attempts := f.attemptURLs(rawURL)
	var lastErr error
	for i, attemptURL := range attempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		body, err := f.fetchOnce(ctx, attemptURL)
		if err == nil && f.usableBody(i, body) {
			if i > 0 {
				f.logger.Debug("fetched via proxy fallback",
					zap.String("url", rawURL),
					zap.Int("attempt", i+1),
				)
			}
			return body, nil
		}
		if err == nil {
			err = fmt.Errorf("body too small (%d bytes)", len(body))
		}
		lastErr = err
		f.logger.Debug("fetch attempt failed",
			zap.String("url", attemptURL),
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
	}
	return "", &FetchError{URL: rawURL, Attempts: len(attempts), Err: lastErr}
}

// usableBody decides whether a successful response is worth returning. A
// direct 2xx is trusted with any non-empty body; proxy rewrites often wrap
// upstream errors in tiny 200 responses, so they must clear minUsableBody.
func (f *CollyFetcher) usableBody(attempt int, body string) bool {
	if attempt == 0 {
		return len(body) > 0
	}
	return len(body) > minUsableBody
}

// attemptURLs builds the ordered strategy list: the direct URL followed by
// each proxy rewrite.
func (f *CollyFetcher) attemptURLs(rawURL string) []string {
	attempts := make([]string, 0, len(f.proxies)+1)
	attempts = append(attempts, rawURL)
	for _, endpoint := range f.proxies {
		attempts = append(attempts, endpoint+url.QueryEscape(rawURL))
	}
	return attempts
}

func (f *CollyFetcher) fetchOnce(ctx context.Context, attemptURL string) (string, error) {
	collector := f.baseCollector.Clone()

	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() { resultCh <- res })
	}

	collector.OnRequest(func(r *colly.Request) {
		for name, value := range defaultHeaders {
			r.Headers.Set(name, value)
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		if r.StatusCode < 200 || r.StatusCode >= 300 {
			send(fetchResult{err: fmt.Errorf("unexpected status %d", r.StatusCode)})
			return
		}
		send(fetchResult{body: string(r.Body)})
	})
	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		if r != nil && r.StatusCode != 0 {
			err = fmt.Errorf("status %d: %w", r.StatusCode, err)
		}
		send(fetchResult{err: err})
	})

	if err := collector.Visit(attemptURL); err != nil {
		return "", fmt.Errorf("visit: %w", err)
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return res.body, res.err
	default:
		return "", errors.New("fetch produced no result")
	}
}

type fetchResult struct {
	body string
	err  error
}
