// Package progress defines the event stream emitted by the crawl controller
// as each page completes, replacing after-the-fact progress reporting with a
// synchronous notification channel.
package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stage denotes the type of milestone represented by an Event.
type Stage string

// Supported progress stages.
const (
	StageCrawlStart    Stage = "CRAWL_START"
	StageCrawlDone     Stage = "CRAWL_DONE"
	StageCrawlError    Stage = "CRAWL_ERROR"
	StageFetchDone     Stage = "FETCH_DONE"
	StagePageExtracted Stage = "PAGE_EXTRACTED"
	StagePageSkipped   Stage = "PAGE_SKIPPED"
)

// StatusClass is a coarse HTTP response grouping.
type StatusClass string

// Supported status classes tracked for fetch completions.
const (
	StatusOK      StatusClass = "ok"
	StatusFailed  StatusClass = "failed"
	StatusSkipped StatusClass = "skipped"
)

// Event captures a single milestone of crawl progress.
type Event struct {
	// CrawlID uniquely identifies a crawl run using the 16-byte UUID form.
	CrawlID [16]byte
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
	// Stage denotes which lifecycle or page milestone occurred.
	Stage Stage
	// Site scopes page events to the crawl host.
	Site string
	// URL is the page URL for page-level events.
	URL string
	// Bytes carries the fetched body size for the page.
	Bytes int64
	// Items increments by one for each extracted item.
	Items int64
	// Status groups the page outcome.
	Status StatusClass
	// Dur captures fetch latency or total crawl runtime.
	Dur time.Duration
	// Note lets emitters attach low-volume context (skip reason, error text).
	Note string
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.CrawlID == [16]byte{} {
		return errors.New("crawl id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageCrawlStart, StageCrawlDone, StageCrawlError:
	case StageFetchDone:
		if e.Site == "" {
			return errors.New("fetch done requires site")
		}
		if e.Status == "" {
			return errors.New("fetch done requires status")
		}
	case StagePageExtracted, StagePageSkipped:
		if e.URL == "" {
			return errors.New("page event requires url")
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Dur < 0 {
		return errors.New("duration must be >= 0")
	}
	return nil
}

// CrawlUUID converts the binary crawl ID to uuid.UUID for repositories.
func (e Event) CrawlUUID() uuid.UUID {
	return uuid.UUID(e.CrawlID)
}

// UUIDToBytes encodes a uuid.UUID into the Event form.
func UUIDToBytes(id uuid.UUID) [16]byte {
	var dest [16]byte
	copy(dest[:], id[:])
	return dest
}
