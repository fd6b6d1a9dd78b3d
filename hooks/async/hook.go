// Package asynchook moves objcache hook calls off the hot path.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    LookupEvery:  100, // sample lookups
//	    CorruptEvery: 1,
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := objcache.New[any](objcache.Options[any]{
//	    Provider: provider,
//	    Hooks:    hooks,
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/dmhendricks/objcache"
)

// Hooks queues events for a bounded worker pool. When the queue is full
// events are dropped and counted.
type Hooks struct {
	inner   objcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against sends on a closed queue
	closed  bool
	dropped atomic.Uint64
}

var _ objcache.Hooks = (*Hooks)(nil)

func New(inner objcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Later events are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports events lost to a full queue or a closed hook.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) Lookup(g, m string, hit bool)     { h.try(func() { h.inner.Lookup(g, m, hit) }) }
func (h *Hooks) CorruptEntry(k, r string)         { h.try(func() { h.inner.CorruptEntry(k, r) }) }
func (h *Hooks) StoreError(op, k string, e error) { h.try(func() { h.inner.StoreError(op, k, e) }) }
func (h *Hooks) ProviderSetRejected(k string, b bool) {
	h.try(func() { h.inner.ProviderSetRejected(k, b) })
}
func (h *Hooks) FlushFailed(g string, r objcache.FlushReason, err error) {
	h.try(func() { h.inner.FlushFailed(g, r, err) })
}
