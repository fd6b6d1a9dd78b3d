package asynchook

import (
	"sync"
	"testing"

	"github.com/dmhendricks/objcache"
)

type countingHooks struct {
	objcache.NopHooks
	mu      sync.Mutex
	lookups int
	block   chan struct{}
}

func (c *countingHooks) Lookup(string, string, bool) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	c.lookups++
	c.mu.Unlock()
}

func TestDeliversAndDrainsOnClose(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 16)
	for i := 0; i < 10; i++ {
		h.Lookup("g", "group", true)
	}
	h.Close()

	if inner.lookups != 10 {
		t.Fatalf("delivered %d, want 10", inner.lookups)
	}
	if h.Dropped() != 0 {
		t.Fatalf("dropped %d", h.Dropped())
	}

	h.Lookup("g", "group", true) // after close: dropped, no panic
	if h.Dropped() != 1 {
		t.Fatalf("dropped after close = %d, want 1", h.Dropped())
	}
}

func TestDropsWhenFull(t *testing.T) {
	inner := &countingHooks{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// first event occupies the worker, second fills the queue, the rest drop
	for i := 0; i < 5; i++ {
		h.Lookup("g", "group", false)
	}
	close(inner.block)
	h.Close()

	if got := uint64(inner.lookups) + h.Dropped(); got != 5 {
		t.Fatalf("delivered+dropped=%d, want 5", got)
	}
	if h.Dropped() == 0 {
		t.Fatalf("expected drops with a blocked worker and qlen=1")
	}
}
