package objcache

import (
	"context"

	c "github.com/dmhendricks/objcache/codec"
	pr "github.com/dmhendricks/objcache/provider"
)

type SetCostFunc func(storageKey string, raw []byte, isGroup bool, groupCount int) int64

// Producer computes a value on a cache miss.
type Producer[V any] func(ctx context.Context) (V, error)

// Cache is a cache-aside façade over an external object store.
// V is the caller's value type. Serialization is handled by a pluggable Codec[V].
type Cache[V any] interface {
	Enabled() bool
	Close(context.Context) error

	// GetObject returns the cached value for key, or runs produce, stores its
	// result and returns it. overrides are merged over the instance
	// attributes with SetDefaultAtts; nil keeps the instance configuration.
	// Only produce's error (unchanged) or ErrEmptyKey/ErrNoProducer are returned.
	GetObject(ctx context.Context, key string, produce Producer[V], overrides Atts) (V, error)

	// FlushGroup deletes the aggregate entry of group ("" => group from the
	// attributes). overrides select the scope exactly like GetObject's; without
	// them, a multisite flush that finds nothing under the instance scope also
	// tries the other one (site-scoped vs network_global).
	// A missing aggregate counts as success; any other store error yields false.
	FlushGroup(ctx context.Context, group string, overrides ...Atts) bool
	// FlushGroupErr is FlushGroup with a typed *FlushError.
	FlushGroupErr(ctx context.Context, group string, overrides ...Atts) error

	// Atts returns the instance attributes (defaults merged with Options.Atts).
	Atts() Atts
	Config() Config
}

// Options tune the behavior of the cache.
// Only Provider is required; others have sensible defaults.
type Options[V any] struct {
	// Required
	Provider pr.Provider

	Codec          c.Codec[V]  // nil => msgpack
	Env            Env         // nil => StaticEnv{} (single site)
	Atts           Atts        // merged over DefaultAtts(Env.Namespace())
	Logger         Logger      // nil => NopLogger
	Hooks          Hooks       // nil => NopHooks
	ComputeSetCost SetCostFunc // default 1
	Disabled       bool        // default false (enabled); disabled always produces

	// Coalesce de-duplicates concurrent misses of the same entry within this
	// process: one producer call, shared result. Off by default, in which
	// case concurrent misses each run the producer and the last write wins.
	Coalesce bool
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
