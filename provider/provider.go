// Package provider defines the external object store used by objcache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation).
//
// Important: the keyspaces "obj:", "grp:", "objh:" and "grph:" are owned by objcache. Foreign
// writes under these prefixes fail frame validation and are read as misses.
package provider

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Del when the backend can tell the key was absent.
	ErrNotFound = errors.New("provider: key not found")
	// ErrUnavailable marks backend outages (closed client, connection refused).
	ErrUnavailable = errors.New("provider: store unavailable")
)

// Provider is a minimal byte store with TTLs.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (ttl <= 0 => no expiry).
	// May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key. Backends that can detect a missing key return an
	// error matching ErrNotFound.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
