//go:build linux

package gpio

import (
	"testing"

	"github.com/warthog618/go-gpiocdev"
)

// With the switch wired to GND and the line pulled up, the circuit
// opening releases the line high: a rising edge is the door opening.
func TestHandleMapsEdgesForPullUpWiring(t *testing.T) {
	w := &RealWatcher{edges: make(chan Edge, 2)}

	w.handle(gpiocdev.LineEvent{Type: gpiocdev.LineEventRisingEdge}, false)
	w.handle(gpiocdev.LineEvent{Type: gpiocdev.LineEventFallingEdge}, false)

	if e := <-w.edges; !e.Open {
		t.Error("rising edge should report the door opened")
	}
	if e := <-w.edges; e.Open {
		t.Error("falling edge should report the door closed")
	}
}

func TestHandleActiveLowInvertsMapping(t *testing.T) {
	w := &RealWatcher{edges: make(chan Edge, 2)}

	w.handle(gpiocdev.LineEvent{Type: gpiocdev.LineEventRisingEdge}, true)
	w.handle(gpiocdev.LineEvent{Type: gpiocdev.LineEventFallingEdge}, true)

	if e := <-w.edges; e.Open {
		t.Error("active_low should invert the rising-edge mapping")
	}
	if e := <-w.edges; !e.Open {
		t.Error("active_low should invert the falling-edge mapping")
	}
}

func TestHandleDropsWhenQueueFull(t *testing.T) {
	w := &RealWatcher{edges: make(chan Edge, 1)}

	w.handle(gpiocdev.LineEvent{Type: gpiocdev.LineEventRisingEdge}, false)
	w.handle(gpiocdev.LineEvent{Type: gpiocdev.LineEventFallingEdge}, false)

	if e := <-w.edges; !e.Open {
		t.Error("first edge should survive, later ones drop")
	}
	select {
	case e := <-w.edges:
		t.Errorf("unexpected second edge: %+v", e)
	default:
	}
}
