package mqtt

import (
	"fmt"
	"testing"
)

func TestRingBufferEmpty(t *testing.T) {
	rb := newRingBuffer(10)
	if rb.len() != 0 {
		t.Errorf("len: got %d, want 0", rb.len())
	}
	if got := rb.drainAll(); got != nil {
		t.Errorf("drainAll on empty: got %v, want nil", got)
	}
}

func TestRingBufferPushDrain(t *testing.T) {
	rb := newRingBuffer(10)
	rb.push(bufferedMsg{topic: "a", payload: []byte("1")})
	rb.push(bufferedMsg{topic: "b", payload: []byte("2")})

	if rb.len() != 2 {
		t.Fatalf("len: got %d, want 2", rb.len())
	}

	msgs := rb.drainAll()
	if len(msgs) != 2 {
		t.Fatalf("drained: got %d, want 2", len(msgs))
	}
	if msgs[0].topic != "a" || msgs[1].topic != "b" {
		t.Errorf("order: got %s, %s", msgs[0].topic, msgs[1].topic)
	}
	if rb.len() != 0 {
		t.Errorf("len after drain: got %d, want 0", rb.len())
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	capacity := 3
	rb := newRingBuffer(capacity)
	for i := 0; i < 5; i++ {
		rb.push(bufferedMsg{topic: fmt.Sprintf("t%d", i)})
	}

	if rb.len() != capacity {
		t.Fatalf("len: got %d, want %d", rb.len(), capacity)
	}

	msgs := rb.drainAll()
	// 0 and 1 were dropped; 2, 3, 4 survive in order.
	want := []string{"t2", "t3", "t4"}
	for i, w := range want {
		if msgs[i].topic != w {
			t.Errorf("msg %d: got %s, want %s", i, msgs[i].topic, w)
		}
	}
}

func TestRingBufferReuseAfterDrain(t *testing.T) {
	rb := newRingBuffer(4)
	rb.push(bufferedMsg{topic: "a"})
	rb.drainAll()

	rb.push(bufferedMsg{topic: "b"})
	rb.push(bufferedMsg{topic: "c"})
	msgs := rb.drainAll()
	if len(msgs) != 2 || msgs[0].topic != "b" || msgs[1].topic != "c" {
		t.Errorf("got %v", msgs)
	}
}

func TestRingBufferWrapAround(t *testing.T) {
	rb := newRingBuffer(3)
	// Fill, drain partially via overflow, fill again past the seam.
	for i := 0; i < 3; i++ {
		rb.push(bufferedMsg{topic: fmt.Sprintf("x%d", i)})
	}
	rb.push(bufferedMsg{topic: "x3"}) // overwrites x0

	msgs := rb.drainAll()
	want := []string{"x1", "x2", "x3"}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages", len(msgs))
	}
	for i, w := range want {
		if msgs[i].topic != w {
			t.Errorf("msg %d: got %s, want %s", i, msgs[i].topic, w)
		}
	}
}
