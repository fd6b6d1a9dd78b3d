// Package memory is a map-backed Provider with lazy TTL expiry.
// Suited to tests and single-process embedding; it never evicts.
package memory

import (
	"context"
	"sync"
	"time"

	pr "github.com/dmhendricks/objcache/provider"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type Memory struct {
	mu     sync.Mutex
	m      map[string]entry
	closed bool
	now    func() time.Time
}

var _ pr.Provider = (*Memory)(nil)

func New() *Memory {
	return &Memory{m: make(map[string]entry), now: time.Now}
}

func (p *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, false, pr.ErrUnavailable
	}
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && !p.now().Before(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *Memory) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false, pr.ErrUnavailable
	}
	var exp time.Time
	if ttl > 0 {
		exp = p.now().Add(ttl)
	}
	// copy: callers may reuse value
	p.m[key] = entry{v: append([]byte(nil), value...), exp: exp}
	return true, nil
}

func (p *Memory) Del(_ context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return pr.ErrUnavailable
	}
	if _, ok := p.m[key]; !ok {
		return pr.ErrNotFound
	}
	delete(p.m, key)
	return nil
}

// Len reports stored entries, including expired ones not yet read.
func (p *Memory) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

func (p *Memory) Close(_ context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.m = make(map[string]entry)
	p.mu.Unlock()
	return nil
}
