package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// RobotsAdvisor performs the advisory robots.txt probe. Findings are logged;
// nothing it learns ever blocks the crawl and no failure is fatal.
type RobotsAdvisor struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewRobotsAdvisor returns an advisor with a bounded probe timeout.
func NewRobotsAdvisor(userAgent string, timeout time.Duration, logger *zap.Logger) *RobotsAdvisor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RobotsAdvisor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Probe fetches and parses robots.txt for the seed's host and logs whether
// the seed path would be allowed for our user agent.
func (a *RobotsAdvisor) Probe(ctx context.Context, seed *url.URL) {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", seed.Scheme, seed.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		a.logger.Warn("robots probe request build failed", zap.Error(err))
		return
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("robots probe failed", zap.String("url", robotsURL), zap.Error(err))
		return
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			a.logger.Debug("robots body close failed", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		a.logger.Info("robots.txt unavailable",
			zap.String("url", robotsURL),
			zap.Int("status", resp.StatusCode),
		)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		a.logger.Warn("robots probe read failed", zap.Error(err))
		return
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		a.logger.Warn("robots.txt parse failed", zap.Error(err))
		return
	}

	group := data.FindGroup(a.userAgent)
	path := seed.Path
	if path == "" {
		path = "/"
	}
	a.logger.Info("robots.txt advisory",
		zap.String("host", seed.Host),
		zap.String("path", path),
		zap.Bool("allowed", group.Test(path)),
	)
}
