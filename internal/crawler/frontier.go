package crawler

import "container/list"

// Frontier is the pending-work queue plus the visited set. It is owned
// exclusively by the Controller and is not safe for concurrent use.
type Frontier struct {
	entries *list.List
	queued  map[string]struct{}
	visited map[string]struct{}
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		entries: list.New(),
		queued:  make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}
}

// Push enqueues an entry. A priority push inserts at the head so links
// harvested from listing pages are processed before continuing breadth-first
// discovery; a normal push appends at the tail. Entries whose URL is already
// visited or already queued are dropped.
func (f *Frontier) Push(entry FrontierEntry, priority bool) {
	key, err := NormalizeURL(entry.URL)
	if err != nil {
		return
	}
	if _, seen := f.visited[key]; seen {
		return
	}
	if _, pending := f.queued[key]; pending {
		return
	}
	f.queued[key] = struct{}{}
	if priority {
		f.entries.PushFront(entry)
		return
	}
	f.entries.PushBack(entry)
}

// Pop removes and returns the head entry. ok is false once the queue is
// drained, which is one of the two controller termination conditions.
func (f *Frontier) Pop() (FrontierEntry, bool) {
	front := f.entries.Front()
	if front == nil {
		return FrontierEntry{}, false
	}
	f.entries.Remove(front)
	entry := front.Value.(FrontierEntry)
	if key, err := NormalizeURL(entry.URL); err == nil {
		delete(f.queued, key)
	}
	return entry, true
}

// MarkVisited records a URL so it is never dequeue-processed again.
func (f *Frontier) MarkVisited(rawURL string) {
	f.visited[normalizeOrRaw(rawURL)] = struct{}{}
}

// Visited reports whether a URL has already been processed.
func (f *Frontier) Visited(rawURL string) bool {
	_, ok := f.visited[normalizeOrRaw(rawURL)]
	return ok
}

// Len returns the number of queued entries.
func (f *Frontier) Len() int {
	return f.entries.Len()
}

func normalizeOrRaw(rawURL string) string {
	key, err := NormalizeURL(rawURL)
	if err != nil {
		return rawURL
	}
	return key
}
