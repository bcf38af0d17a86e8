//go:build !linux

package gpio

import (
	"errors"
	"time"
)

// RealWatcher is not available on non-Linux platforms.
type RealWatcher struct{}

// NewRealWatcher returns an error on non-Linux platforms.
func NewRealWatcher(chipName string, pin int, activeLow bool, debounce time.Duration) (*RealWatcher, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Edges returns a closed channel so a ranging caller exits immediately
// instead of blocking on a nil channel.
func (w *RealWatcher) Edges() <-chan Edge {
	ch := make(chan Edge)
	close(ch)
	return ch
}

// Close is not implemented on non-Linux platforms.
func (w *RealWatcher) Close() error {
	return nil
}
