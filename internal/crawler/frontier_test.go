package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFrontierFIFO checks normal pushes come back in insertion order.
func TestFrontierFIFO(t *testing.T) {
	t.Parallel()

	f := NewFrontier()
	f.Push(FrontierEntry{URL: "https://example.com/a", Depth: 1}, false)
	f.Push(FrontierEntry{URL: "https://example.com/b", Depth: 1}, false)

	first, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, "https://example.com/a", first.URL)

	second, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, "https://example.com/b", second.URL)

	_, ok = f.Pop()
	require.False(t, ok)
}

// TestFrontierPriorityJumpsQueue checks priority pushes land at the head.
func TestFrontierPriorityJumpsQueue(t *testing.T) {
	t.Parallel()

	f := NewFrontier()
	f.Push(FrontierEntry{URL: "https://example.com/tail"}, false)
	f.Push(FrontierEntry{URL: "https://example.com/head"}, true)

	entry, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, "https://example.com/head", entry.URL)
}

// TestFrontierDedup verifies queued and visited URLs are never re-enqueued,
// including variants that normalize to the same URL.
func TestFrontierDedup(t *testing.T) {
	t.Parallel()

	f := NewFrontier()
	f.Push(FrontierEntry{URL: "https://example.com/a"}, false)
	f.Push(FrontierEntry{URL: "https://example.com/a"}, false)
	f.Push(FrontierEntry{URL: "HTTPS://EXAMPLE.COM/a"}, false)
	f.Push(FrontierEntry{URL: "https://example.com/a#frag"}, false)
	require.Equal(t, 1, f.Len())

	f.MarkVisited("https://example.com/b")
	f.Push(FrontierEntry{URL: "https://example.com/b"}, false)
	require.Equal(t, 1, f.Len())

	entry, ok := f.Pop()
	require.True(t, ok)
	f.MarkVisited(entry.URL)

	// Once popped and visited, the URL stays out of the queue.
	f.Push(FrontierEntry{URL: "https://example.com/a"}, false)
	require.Equal(t, 0, f.Len())
	require.True(t, f.Visited("https://example.com/a"))
}

// TestFrontierPopAllowsRequeueOfUnvisited checks a popped but unvisited URL
// may be pushed again.
func TestFrontierPopAllowsRequeueOfUnvisited(t *testing.T) {
	t.Parallel()

	f := NewFrontier()
	f.Push(FrontierEntry{URL: "https://example.com/a"}, false)
	_, ok := f.Pop()
	require.True(t, ok)

	f.Push(FrontierEntry{URL: "https://example.com/a"}, false)
	require.Equal(t, 1, f.Len())
}
