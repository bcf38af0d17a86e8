package gpio

import (
	"testing"
	"time"
)

func TestFakeWatcherDeliversEdges(t *testing.T) {
	f := NewFakeWatcher()
	t1 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(5 * time.Second)

	f.Emit(true, t1)
	f.Emit(false, t2)

	e := <-f.Edges()
	if !e.Open || !e.Time.Equal(t1) {
		t.Errorf("edge 0: got %+v", e)
	}
	e = <-f.Edges()
	if e.Open || !e.Time.Equal(t2) {
		t.Errorf("edge 1: got %+v", e)
	}
}

func TestFakeWatcherCloseClosesChannel(t *testing.T) {
	f := NewFakeWatcher()
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.IsClosed() {
		t.Error("expected IsClosed after Close")
	}

	if _, ok := <-f.Edges(); ok {
		t.Error("expected closed channel")
	}
}

func TestFakeWatcherEmitAfterCloseIsIgnored(t *testing.T) {
	f := NewFakeWatcher()
	f.Close()
	// Must not panic on the closed channel.
	f.Emit(true, time.Now())
}

func TestFakeWatcherCloseTwice(t *testing.T) {
	f := NewFakeWatcher()
	if err := f.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
