package objcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A GetObject lookup finished. mode ∈ {"single", "group"}.
	Lookup(group, mode string, hit bool)

	// A stored entry could not be decoded and was read as a miss.
	// reason ∈ {"frame", "group_frame", "value_decode"}
	CorruptEntry(storageKey, reason string)

	// Provider Get/Set failed. op ∈ {"get", "set"}.
	StoreError(op, storageKey string, err error)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string, isGroup bool)

	// A group flush failed for a reason other than "not found".
	FlushFailed(group string, reason FlushReason, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Lookup(string, string, bool)            {}
func (NopHooks) CorruptEntry(string, string)            {}
func (NopHooks) StoreError(string, string, error)       {}
func (NopHooks) ProviderSetRejected(string, bool)       {}
func (NopHooks) FlushFailed(string, FlushReason, error) {}
