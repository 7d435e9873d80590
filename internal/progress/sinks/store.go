package sinks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mario263/OG-Tool/internal/progress"
)

// Snapshot is the aggregated view of one crawl's progress, served by the API.
type Snapshot struct {
	CrawlID      string    `json:"crawl_id"`
	Site         string    `json:"site"`
	State        string    `json:"state"`
	PagesFetched int64     `json:"pages_fetched"`
	PagesFailed  int64     `json:"pages_failed"`
	PagesSkipped int64     `json:"pages_skipped"`
	Items        int64     `json:"items"`
	Bytes        int64     `json:"bytes"`
	StartedAt    time.Time `json:"started_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Note         string    `json:"note,omitempty"`
}

// StoreSink folds events into per-crawl snapshots held in memory. Crawl state
// is intentionally not persisted across restarts.
type StoreSink struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID]*Snapshot
}

// NewStoreSink returns an empty snapshot store.
func NewStoreSink() *StoreSink {
	return &StoreSink{snapshots: make(map[uuid.UUID]*Snapshot)}
}

// Consume folds each event into its crawl's snapshot.
func (s *StoreSink) Consume(_ context.Context, batch []progress.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, evt := range batch {
		id := evt.CrawlUUID()
		snap := s.snapshots[id]
		if snap == nil {
			snap = &Snapshot{CrawlID: id.String(), StartedAt: evt.TS}
			s.snapshots[id] = snap
		}
		if evt.Site != "" {
			snap.Site = evt.Site
		}
		snap.UpdatedAt = evt.TS
		switch evt.Stage {
		case progress.StageCrawlStart:
			snap.State = "running"
			snap.StartedAt = evt.TS
		case progress.StageCrawlDone:
			snap.State = "done"
		case progress.StageCrawlError:
			snap.State = "error"
			snap.Note = evt.Note
		case progress.StageFetchDone:
			if evt.Status == progress.StatusOK {
				snap.PagesFetched++
			} else {
				snap.PagesFailed++
			}
			snap.Bytes += evt.Bytes
		case progress.StagePageExtracted:
			snap.Items += evt.Items
		case progress.StagePageSkipped:
			snap.PagesSkipped++
		}
	}
	return nil
}

// Get returns the snapshot for a crawl ID.
func (s *StoreSink) Get(id uuid.UUID) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return Snapshot{}, false
	}
	return *snap, true
}

// Close implements the Sink interface; it performs no action.
func (s *StoreSink) Close(context.Context) error {
	return nil
}
