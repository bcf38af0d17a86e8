// Package gpio delivers debounced door switch edges with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device; the fake implementation allows testing without hardware.
package gpio

import "time"

// Edge is one debounced transition of the door switch.
type Edge struct {
	Open bool // true = door opened, false = door closed
	Time time.Time
}

// Watcher delivers debounced edges from the door switch.
// Debouncing happens at the hardware layer, so consecutive edges always
// alternate direction under normal operation.
type Watcher interface {
	// Edges returns the channel edges are delivered on. The channel is
	// closed when the watcher is closed.
	Edges() <-chan Edge

	// Close releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin the reed switch is wired to (pin and GND).
const DefaultPin = 21

// edgeQueueSize bounds the delivery channel. The hardware debounce
// interval (>= 1s) makes overflow effectively impossible, but a slow
// consumer must never block the event handler.
const edgeQueueSize = 16
