// Package objcache implements a cache-aside helper over an external object
// store: read a value, or compute it, store it and return it. Entries are
// organized in groups that can be invalidated with one delete.
//
// Components:
//   - Provider: byte store with TTL (e.g. Ristretto, BigCache, Redis).
//   - Codec[V]: (de)serializes V <-> []byte. Msgpack by default.
//   - Env: host facts (current site id, multisite flag, namespace).
//
// Configuration is an ordered attribute list (Atts) merged over defaults with
// SetDefaultAtts:
//
//	expire          seconds, 0 => no expiry (default 3600)
//	group           "<namespace>_cache_group"
//	single          false => one aggregate entry per group
//	network_global  false => per-site keys and groups on multisite
//	force           accepted, unused
//
// Keys:
//
//	obj:<len(group)>:<group>:<key>  - single entries
//	grp:<group>                     - group aggregates (all keys of a group in one entry)
//	objh:<hash>, grph:<hash>        - the same, for keys over 250 bytes
//
// FlushGroup only removes the aggregate; single entries live until they
// expire or the store is flushed.
//
// Usage:
//
//	menus, _ := objcache.New[any](objcache.Options[any]{Provider: p, Env: env})
//	v, err := menus.GetObject(ctx, "main_menu", func(ctx context.Context) (any, error) {
//	    return loadMenu(ctx)
//	}, objcache.Atts{{Key: "expire", Value: 300}})
package objcache
