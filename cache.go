package objcache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmhendricks/objcache/codec"
	"github.com/dmhendricks/objcache/internal/util"
	"github.com/dmhendricks/objcache/internal/wire"
	pr "github.com/dmhendricks/objcache/provider"
)

var ErrNoProducer = errors.New("objcache: producer is required")

const (
	modeSingle = "single"
	modeGroup  = "group"
)

type cache[V any] struct {
	provider       pr.Provider
	codec          codec.Codec[V]
	env            Env
	log            Logger
	hooks          Hooks
	enabled        bool
	computeSetCost SetCostFunc

	atts Atts
	cfg  Config

	flight *singleflight.Group // nil unless Options.Coalesce
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Provider == nil {
		return nil, ErrNoProvider
	}

	c := &cache[V]{
		provider: opts.Provider,
		enabled:  !opts.Disabled,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if opts.Codec != nil {
		c.codec = opts.Codec
	} else {
		c.codec = codec.Msgpack[V]{}
	}
	if opts.Env != nil {
		c.env = opts.Env
	} else {
		c.env = StaticEnv{}
	}
	if opts.ComputeSetCost != nil {
		c.computeSetCost = opts.ComputeSetCost
	} else {
		c.computeSetCost = func(_ string, _ []byte, _ bool, _ int) int64 { return 1 }
	}
	if opts.Coalesce {
		c.flight = &singleflight.Group{}
	}

	c.atts = SetDefaultAtts(DefaultAtts(c.env.Namespace()), opts.Atts)
	c.cfg = ParseConfig(c.atts)
	return c, nil
}

func (c *cache[V]) Enabled() bool { return c.enabled }

func (c *cache[V]) Close(ctx context.Context) error {
	if c.provider != nil {
		return c.provider.Close(ctx)
	}
	return nil
}

func (c *cache[V]) Atts() Atts {
	return append(Atts(nil), c.atts...)
}

func (c *cache[V]) Config() Config { return c.cfg }

// target is a fully resolved lookup.
type target struct {
	cfg        Config
	group      string // site-scoped group
	objectKey  string // site-scoped key
	storageKey string // provider key: the entry (single) or the aggregate (group)
}

func (t target) mode() string {
	if t.cfg.Single {
		return modeSingle
	}
	return modeGroup
}

func (c *cache[V]) resolve(ctx context.Context, key string, overrides Atts) target {
	cfg := c.cfg
	if len(overrides) > 0 {
		cfg = ParseConfig(SetDefaultAtts(c.atts, overrides))
	}
	t := target{cfg: cfg, group: c.scopeGroup(ctx, cfg.Group, cfg.NetworkGlobal), objectKey: key}
	if c.siteScoped(cfg.NetworkGlobal) {
		t.objectKey = util.SiteSuffix(key, c.env.SiteID(ctx))
	}
	if cfg.Single {
		t.storageKey = util.ObjectKey(t.group, t.objectKey)
	} else {
		t.storageKey = util.GroupKey(t.group)
	}
	return t
}

// siteScoped reports whether keys and groups get a per-site suffix.
func (c *cache[V]) siteScoped(networkGlobal bool) bool {
	return c.env.Multisite() && !networkGlobal
}

func (c *cache[V]) scopeGroup(ctx context.Context, group string, networkGlobal bool) string {
	if c.siteScoped(networkGlobal) {
		return util.SiteSuffix(group, c.env.SiteID(ctx))
	}
	return group
}

func (c *cache[V]) GetObject(ctx context.Context, key string, produce Producer[V], overrides Atts) (V, error) {
	var zero V
	if key == "" {
		return zero, ErrEmptyKey
	}
	if produce == nil {
		return zero, ErrNoProducer
	}
	if !c.enabled {
		v, err := produce(ctx)
		if err != nil {
			return zero, err
		}
		return normalizeNumeric(v), nil
	}

	t := c.resolve(ctx, key, overrides)
	v, hit := c.lookup(ctx, t)
	c.hooks.Lookup(t.group, t.mode(), hit)
	if hit {
		return normalizeNumeric(v), nil
	}

	c.log.Debug("cache miss; producing", Fields{"key": t.objectKey, "group": t.group, "mode": t.mode()})
	if c.flight != nil {
		v, err := c.produceShared(ctx, t, produce)
		if err != nil {
			return zero, err
		}
		return normalizeNumeric(v), nil
	}
	v, err := c.produceAndStore(ctx, t, produce)
	if err != nil {
		return zero, err
	}
	return normalizeNumeric(v), nil
}

func (c *cache[V]) produceAndStore(ctx context.Context, t target, produce Producer[V]) (V, error) {
	v, err := produce(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	c.store(ctx, t, v)
	return v, nil
}

// produceShared runs produceAndStore once per entry across concurrent callers.
// Every waiter gets the leader's value or error.
func (c *cache[V]) produceShared(ctx context.Context, t target, produce Producer[V]) (V, error) {
	fk := t.storageKey
	if !t.cfg.Single {
		fk += "\x00" + t.objectKey
	}
	r, err, _ := c.flight.Do(fk, func() (any, error) {
		return c.produceAndStore(ctx, t, produce)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := r.(V) // nil interface result => zero V
	return v, nil
}

func (c *cache[V]) lookup(ctx context.Context, t target) (V, bool) {
	var zero V
	raw, ok := c.read(ctx, t.storageKey)
	if !ok {
		return zero, false
	}

	var payload []byte
	if t.cfg.Single {
		p, err := wire.DecodeSingle(raw)
		if err != nil {
			c.corrupt(t.storageKey, "frame", err)
			return zero, false
		}
		payload = p
	} else {
		items, err := wire.DecodeGroup(raw)
		if err != nil {
			c.corrupt(t.storageKey, "group_frame", err)
			return zero, false
		}
		p, found := findItem(items, t.objectKey)
		if !found {
			return zero, false
		}
		payload = p
	}

	v, err := c.codec.Decode(payload)
	if err != nil {
		c.corrupt(t.storageKey, "value_decode", err)
		return zero, false
	}
	return v, true
}

// read fetches raw bytes. Store errors degrade to a miss.
func (c *cache[V]) read(ctx context.Context, storageKey string) ([]byte, bool) {
	raw, ok, err := c.provider.Get(ctx, storageKey)
	if err != nil {
		c.log.Warn("store read failed; treating as miss", Fields{"key": storageKey, "err": err})
		c.hooks.StoreError("get", storageKey, err)
		return nil, false
	}
	return raw, ok
}

func (c *cache[V]) corrupt(storageKey, reason string, err error) {
	c.log.Warn("undecodable cache entry; treating as miss", Fields{"key": storageKey, "reason": reason, "err": err})
	c.hooks.CorruptEntry(storageKey, reason)
}

// store writes v best-effort; failures are logged, never returned.
func (c *cache[V]) store(ctx context.Context, t target, v V) {
	payload, err := c.codec.Encode(v)
	if err != nil {
		c.log.Warn("encode failed; value not cached", Fields{"key": t.objectKey, "err": err})
		return
	}

	if t.cfg.Single {
		c.set(ctx, t.storageKey, wire.EncodeSingle(payload), false, 1, t.cfg.Expire)
		return
	}

	// Re-read the aggregate right before writing to narrow the window in
	// which a concurrent writer's item is lost. Not atomic.
	var items []wire.Item
	if raw, ok := c.read(ctx, t.storageKey); ok {
		if decoded, err := wire.DecodeGroup(raw); err == nil {
			items = decoded
		}
	}
	items = upsertItem(items, t.objectKey, payload)
	raw, err := wire.EncodeGroup(items)
	if err != nil {
		c.log.Warn("group encode failed; value not cached", Fields{"group": t.group, "err": err})
		return
	}
	c.set(ctx, t.storageKey, raw, true, len(items), t.cfg.Expire)
}

func (c *cache[V]) set(ctx context.Context, storageKey string, raw []byte, isGroup bool, count int, ttl time.Duration) {
	ok, err := c.provider.Set(ctx, storageKey, raw, c.computeSetCost(storageKey, raw, isGroup, count), ttl)
	if err != nil {
		c.log.Warn("store write failed", Fields{"key": storageKey, "err": err})
		c.hooks.StoreError("set", storageKey, err)
		return
	}
	if !ok {
		c.log.Debug("write rejected by provider (pressure)", Fields{"key": storageKey})
		c.hooks.ProviderSetRejected(storageKey, isGroup)
	}
}

func findItem(items []wire.Item, key string) ([]byte, bool) {
	// last one wins if a foreign writer left duplicates
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Key == key {
			return items[i].Payload, true
		}
	}
	return nil, false
}

func upsertItem(items []wire.Item, key string, payload []byte) []wire.Item {
	for i := range items {
		if items[i].Key == key {
			items[i].Payload = payload
			return items
		}
	}
	return append(items, wire.Item{Key: key, Payload: payload})
}

func (c *cache[V]) FlushGroup(ctx context.Context, group string, overrides ...Atts) bool {
	err := c.FlushGroupErr(ctx, group, overrides...)
	if err == nil {
		return true
	}
	var fe *FlushError
	return errors.As(err, &fe) && fe.Reason == FlushNotFound
}

func (c *cache[V]) FlushGroupErr(ctx context.Context, group string, overrides ...Atts) error {
	if !c.enabled {
		return nil
	}
	cfg := c.cfg
	if len(overrides) > 0 {
		atts := c.atts
		for _, o := range overrides {
			atts = SetDefaultAtts(atts, o)
		}
		cfg = ParseConfig(atts)
	}
	if group == "" {
		group = cfg.Group
	}

	scoped := c.scopeGroup(ctx, group, cfg.NetworkGlobal)
	fe := c.deleteGroup(ctx, scoped)
	// Without overrides the aggregate may have been written under either
	// scope (per-call network_global); on a network try the other one.
	if fe != nil && fe.Reason == FlushNotFound && len(overrides) == 0 && c.env.Multisite() {
		if other := c.scopeGroup(ctx, group, !cfg.NetworkGlobal); other != scoped {
			fe = c.deleteGroup(ctx, other)
		}
	}
	if fe == nil {
		return nil
	}
	if fe.Reason == FlushNotFound {
		c.log.Debug("group flush: nothing to delete", Fields{"group": fe.Group})
		return fe
	}
	c.log.Error("group flush failed", Fields{"group": fe.Group, "reason": fe.Reason.String(), "err": fe.Err})
	c.hooks.FlushFailed(fe.Group, fe.Reason, fe.Err)
	return fe
}

func (c *cache[V]) deleteGroup(ctx context.Context, group string) *FlushError {
	if err := c.provider.Del(ctx, util.GroupKey(group)); err != nil {
		return newFlushError(group, err)
	}
	c.log.Debug("group flushed", Fields{"group": group})
	return nil
}
