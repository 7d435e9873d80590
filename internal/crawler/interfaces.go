package crawler

import (
	"context"
	"time"
)

// Fetcher retrieves the HTML body of a URL. Implementations must bound every
// attempt with a timeout so a fetch can never block the crawl indefinitely.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// Pacer waits out the configured inter-request delay, honoring the context.
type Pacer interface {
	Wait(ctx context.Context) error
}
