//go:build linux

package gpio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// RealWatcher reads the reed switch via the Linux GPIO character device.
// The line is requested with both-edge events and a hardware debounce
// period, so every delivered event is already a clean logical transition.
type RealWatcher struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line

	edges chan Edge

	mu     sync.Mutex
	closed bool
}

// NewRealWatcher requests the switch line on the given chip.
// With the switch wired to GND and the line pulled up, the circuit closing
// (door closed) pulls the line low; activeLow inverts that mapping for
// boards wired the other way round.
func NewRealWatcher(chipName string, pin int, activeLow bool, debounce time.Duration) (*RealWatcher, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	w := &RealWatcher{
		chip:  chip,
		edges: make(chan Edge, edgeQueueSize),
	}

	line, err := chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithDebounce(debounce),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			w.handle(evt, activeLow)
		}))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request switch pin %d: %w", pin, err)
	}
	w.line = line

	return w, nil
}

// handle converts a line event into an Edge and queues it.
// Event timestamps from the kernel are monotonic since boot, so edges are
// stamped with wall-clock time here instead.
func (w *RealWatcher) handle(evt gpiocdev.LineEvent, activeLow bool) {
	open := evt.Type == gpiocdev.LineEventRisingEdge
	if activeLow {
		open = !open
	}

	edge := Edge{Open: open, Time: time.Now()}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.edges <- edge:
	default:
		log.Printf("gpio: edge queue full, dropping %v", edge)
	}
}

// Edges returns the edge delivery channel.
func (w *RealWatcher) Edges() <-chan Edge {
	return w.edges
}

// Close releases the line and chip and closes the edge channel.
func (w *RealWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.edges)
	w.mu.Unlock()

	var errs []error
	if w.line != nil {
		if err := w.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
