package gpio

import (
	"sync"
	"time"
)

// FakeWatcher is a test double that lets tests inject edges.
type FakeWatcher struct {
	edges chan Edge

	mu     sync.Mutex
	closed bool
}

// NewFakeWatcher creates a FakeWatcher with a buffered edge channel.
func NewFakeWatcher() *FakeWatcher {
	return &FakeWatcher{edges: make(chan Edge, edgeQueueSize)}
}

// Emit injects an edge as if the hardware had reported it.
func (f *FakeWatcher) Emit(open bool, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.edges <- Edge{Open: open, Time: at}
}

// Edges returns the edge delivery channel.
func (f *FakeWatcher) Edges() <-chan Edge {
	return f.edges
}

// Close closes the edge channel. Further Emit calls are ignored.
func (f *FakeWatcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.edges)
	}
	return nil
}

// IsClosed reports whether Close was called.
func (f *FakeWatcher) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
