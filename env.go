package objcache

import "context"

// DefaultNamespace is used when the environment has none.
const DefaultNamespace = "objcache"

// Env describes the host the cache runs in. It is read on every call, so
// implementations should be cheap.
type Env interface {
	// SiteID is the numeric id of the site serving the current request.
	SiteID(ctx context.Context) int64
	// Multisite reports whether several sites share one store.
	Multisite() bool
	// Namespace prefixes the default group name.
	Namespace() string
}

type siteIDKey struct{}

// WithSiteID scopes ctx to another site, like switching blogs mid-request.
func WithSiteID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, siteIDKey{}, id)
}

// SiteIDFromContext returns the id set by WithSiteID.
func SiteIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(siteIDKey{}).(int64)
	return id, ok
}

// StaticEnv is an Env with fixed facts. A site id carried by the context
// (WithSiteID) takes precedence over ID.
type StaticEnv struct {
	ID      int64
	Network bool   // multisite network
	Prefix  string // namespace; "" => DefaultNamespace
}

var _ Env = StaticEnv{}

func (e StaticEnv) SiteID(ctx context.Context) int64 {
	if id, ok := SiteIDFromContext(ctx); ok {
		return id
	}
	return e.ID
}

func (e StaticEnv) Multisite() bool { return e.Network }

func (e StaticEnv) Namespace() string {
	return coalesce(e.Prefix, DefaultNamespace)
}
