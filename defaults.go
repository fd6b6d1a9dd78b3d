package objcache

// coalesce picks def for unset Options fields and empty Env facts.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
