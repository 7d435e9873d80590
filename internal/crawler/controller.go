package crawler

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mario263/OG-Tool/internal/progress"
)

const (
	defaultMaxDepth = 3
)

// Controller drives the crawl loop: pop frontier, fetch, classify, extract,
// enqueue, pace, enforce page and depth caps, aggregate results. It owns the
// frontier and visited set exclusively; one Controller runs one crawl.
type Controller struct {
	cfg     Config
	rules   *RuleSet
	fetcher Fetcher
	links   *LinkExtractor
	content *ContentExtractor
	robots  *RobotsAdvisor
	pacer   Pacer
	emitter progress.Emitter
	clock   Clock
	logger  *zap.Logger
	crawlID uuid.UUID
	state   State
}

// NewController wires a controller for one crawl session. A nil emitter,
// pacer, or robots advisor is replaced with a no-op; rules default to
// DefaultRules.
func NewController(
	cfg Config,
	crawlID uuid.UUID,
	rules *RuleSet,
	fetcher Fetcher,
	pacer Pacer,
	robots *RobotsAdvisor,
	emitter progress.Emitter,
	clock Clock,
	logger *zap.Logger,
) *Controller {
	if rules == nil {
		rules = DefaultRules()
	}
	if pacer == nil {
		pacer = NewDelayPacer(cfg.Delay)
	}
	if emitter == nil {
		emitter = progress.NopEmitter{}
	}
	if clock == nil {
		clock = systemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		cfg:     cfg,
		rules:   rules,
		fetcher: fetcher,
		links:   NewLinkExtractor(rules, logger),
		content: NewContentExtractor(rules, logger),
		robots:  robots,
		pacer:   pacer,
		emitter: emitter,
		clock:   clock,
		logger:  logger,
		crawlID: crawlID,
		state:   StateIdle,
	}
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Run executes the crawl until the frontier drains, the page cap is reached,
// or ctx is canceled. Cancellation is cooperative, checked at the top of each
// iteration, and never discards already-accumulated results. Only a malformed
// seed URL is fatal.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	seed, err := ParseSeed(c.cfg.SeedURL)
	if err != nil {
		return Result{}, err
	}
	domain := seed.Hostname()
	teamID := TeamID(domain)
	maxPages := c.cfg.MaxPages
	if maxPages <= 0 || maxPages > HardMaxPages {
		maxPages = HardMaxPages
	}
	maxDepth := c.cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	started := c.clock.Now()
	c.state = StateRunning
	c.emit(progress.Event{Stage: progress.StageCrawlStart, Site: domain})
	c.logger.Info("crawl starting",
		zap.String("seed", seed.String()),
		zap.Int("max_pages", maxPages),
		zap.Int("max_depth", maxDepth),
	)

	if c.cfg.RespectRobots && c.robots != nil {
		c.robots.Probe(ctx, seed)
	}

	frontier := NewFrontier()
	frontier.Push(FrontierEntry{URL: seed.String(), Depth: 0}, false)

	var items []ExtractedItem
	processed := 0
	seedFailed := false

	for {
		if ctx.Err() != nil {
			c.logger.Info("crawl canceled", zap.Int("pages_processed", processed))
			break
		}
		if processed >= maxPages {
			c.state = StateCapped
			break
		}
		entry, ok := frontier.Pop()
		if !ok {
			c.state = StateDraining
			break
		}
		if frontier.Visited(entry.URL) || entry.Depth > maxDepth {
			continue
		}
		frontier.MarkVisited(entry.URL)
		processed++

		if err := c.pacer.Wait(ctx); err != nil {
			break
		}

		fetchStart := c.clock.Now()
		html, err := c.fetcher.Fetch(ctx, entry.URL)
		fetchDur := c.clock.Now().Sub(fetchStart)
		if err != nil {
			c.emit(progress.Event{
				Stage:  progress.StageFetchDone,
				Site:   domain,
				URL:    entry.URL,
				Status: progress.StatusFailed,
				Dur:    fetchDur,
				Note:   err.Error(),
			})
			c.logger.Warn("fetch failed, skipping page",
				zap.String("url", entry.URL),
				zap.Error(err),
			)
			if entry.Depth == 0 {
				seedFailed = true
			}
			continue
		}
		c.emit(progress.Event{
			Stage:  progress.StageFetchDone,
			Site:   domain,
			URL:    entry.URL,
			Status: progress.StatusOK,
			Bytes:  int64(len(html)),
			Dur:    fetchDur,
		})

		if c.rules.IsListingPage(entry.URL) {
			c.harvestListing(frontier, html, entry, domain, maxDepth)
			continue
		}

		c.processContentPage(frontier, &items, html, entry, domain, maxDepth)
	}

	if c.state == StateRunning {
		// loop left via cancellation
		c.state = StateDraining
	}
	cause := c.state

	if seedFailed && len(items) == 0 {
		items = append(items, placeholderItem(seed))
	}

	c.state = StateDone
	c.emit(progress.Event{
		Stage: progress.StageCrawlDone,
		Site:  domain,
		Items: int64(len(items)),
		Dur:   c.clock.Now().Sub(started),
	})
	c.logger.Info("crawl finished",
		zap.String("team_id", teamID),
		zap.String("cause", string(cause)),
		zap.Int("pages_processed", processed),
		zap.Int("items", len(items)),
	)

	if items == nil {
		items = []ExtractedItem{}
	}
	return Result{TeamID: teamID, Items: items}, nil
}

// harvestListing extracts content links from a listing page and enqueues them
// at the head of the frontier, so individual articles are scraped before
// breadth-first discovery continues.
func (c *Controller) harvestListing(frontier *Frontier, html string, entry FrontierEntry, domain string, maxDepth int) {
	links, err := c.links.Extract(html, entry.URL, domain, true)
	if err != nil {
		c.logger.Warn("listing parse failed", zap.String("url", entry.URL), zap.Error(err))
		return
	}
	next := entry.Depth + 1
	if next > maxDepth {
		return
	}
	// Priority pushes prepend, so walk in reverse to keep document order at
	// the head of the queue.
	for i := len(links) - 1; i >= 0; i-- {
		frontier.Push(FrontierEntry{URL: links[i], Depth: next}, true)
	}
}

// processContentPage extracts an item from a content page, then tail-enqueues
// qualifying links for deeper discovery.
func (c *Controller) processContentPage(frontier *Frontier, items *[]ExtractedItem, html string, entry FrontierEntry, domain string, maxDepth int) {
	item, err := c.content.Extract(html, entry.URL)
	switch {
	case err != nil:
		c.emit(progress.Event{
			Stage: progress.StagePageSkipped,
			Site:  domain,
			URL:   entry.URL,
			Note:  err.Error(),
		})
		c.logger.Warn("content parse failed", zap.String("url", entry.URL), zap.Error(err))
		return
	case item == nil:
		c.emit(progress.Event{
			Stage: progress.StagePageSkipped,
			Site:  domain,
			URL:   entry.URL,
			Note:  "content below threshold",
		})
	default:
		*items = append(*items, *item)
		c.emit(progress.Event{
			Stage: progress.StagePageExtracted,
			Site:  domain,
			URL:   entry.URL,
			Items: 1,
		})
	}

	next := entry.Depth + 1
	if next > maxDepth {
		return
	}
	links, err := c.links.Extract(html, entry.URL, domain, false)
	if err != nil {
		return
	}
	for _, link := range links {
		frontier.Push(FrontierEntry{URL: link, Depth: next}, false)
	}
}

// placeholderItem stands in for the seed when every fetch strategy failed, so
// a total outage yields an explanatory result instead of an aborted crawl.
func placeholderItem(seed *url.URL) ExtractedItem {
	host := seed.Hostname()
	return ExtractedItem{
		Title:       fmt.Sprintf("Unable to access %s", host),
		Content:     fmt.Sprintf("The crawler could not retrieve any pages from %s. Every fetch strategy, including the proxy fallbacks, failed. The site may be down, blocking automated clients, or unreachable from this network.", seed.String()),
		ContentType: ContentTypeOther,
		SourceURL:   seed.String(),
	}
}

func (c *Controller) emit(evt progress.Event) {
	evt.CrawlID = progress.UUIDToBytes(c.crawlID)
	evt.TS = c.clock.Now()
	c.emitter.Emit(evt)
}

// systemClock is the default Clock.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
