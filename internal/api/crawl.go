package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mario263/OG-Tool/internal/config"
	"github.com/Mario263/OG-Tool/internal/crawler"
	"github.com/Mario263/OG-Tool/internal/progress"
)

// CrawlRunner executes one crawl session to completion.
type CrawlRunner interface {
	Run(ctx context.Context, cfg crawler.Config, crawlID uuid.UUID) (crawler.Result, error)
}

// crawlRequest is the POST /v1/crawl body.
type crawlRequest struct {
	Config crawlConfigRequest `json:"config"`
}

// crawlConfigRequest mirrors crawler.Config with optional fields. Zero
// values fall back to service defaults; respect_robots needs a pointer so
// an explicit false survives.
type crawlConfigRequest struct {
	SeedURL       string `json:"seed_url"`
	MaxPages      int    `json:"max_pages"`
	MaxDepth      int    `json:"max_depth"`
	DelayMs       int    `json:"delay_ms"`
	RespectRobots *bool  `json:"respect_robots"`
}

func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeCrawlError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Config.SeedURL == "" {
		s.writeCrawlError(w, http.StatusBadRequest, "config.seed_url is required")
		return
	}

	respectRobots := s.cfg.Crawler.RespectRobots
	if req.Config.RespectRobots != nil {
		respectRobots = *req.Config.RespectRobots
	}
	session := s.cfg.SessionConfig(crawler.Config{
		SeedURL:       req.Config.SeedURL,
		MaxPages:      req.Config.MaxPages,
		MaxDepth:      req.Config.MaxDepth,
		Delay:         time.Duration(req.Config.DelayMs) * time.Millisecond,
		RespectRobots: respectRobots,
	})

	crawlID, err := s.idGen.NewRawID()
	if err != nil {
		s.writeCrawlError(w, http.StatusInternalServerError, "failed to generate crawl id")
		return
	}
	w.Header().Set("X-Crawl-ID", crawlID.String())

	result, err := s.runner.Run(r.Context(), session, crawlID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, crawler.ErrInvalidSeedURL) {
			status = http.StatusBadRequest
		}
		s.logger.Warn("crawl failed",
			zap.String("crawl_id", crawlID.String()),
			zap.String("seed_url", session.SeedURL),
			zap.Error(err),
		)
		s.writeCrawlError(w, status, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// Service is the production CrawlRunner: it assembles a controller per
// request and runs it synchronously.
type Service struct {
	cfg     config.Config
	emitter progress.Emitter
	clock   crawler.Clock
	logger  *zap.Logger
}

// NewService wires the shared dependencies a crawl session needs.
func NewService(cfg config.Config, emitter progress.Emitter, clock crawler.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, emitter: emitter, clock: clock, logger: logger}
}

// Run builds a fetcher, robots advisor and controller for the session and
// executes the crawl.
func (svc *Service) Run(ctx context.Context, cfg crawler.Config, crawlID uuid.UUID) (crawler.Result, error) {
	logger := svc.logger.With(zap.String("crawl_id", crawlID.String()))
	fetcher := crawler.NewCollyFetcher(cfg, logger)
	var robots *crawler.RobotsAdvisor
	if cfg.RespectRobots {
		robots = crawler.NewRobotsAdvisor(cfg.UserAgent, cfg.RequestTimeout, logger)
	}
	ctrl := crawler.NewController(cfg, crawlID, nil, fetcher, nil, robots, svc.emitter, svc.clock, logger)
	return ctrl.Run(ctx)
}
