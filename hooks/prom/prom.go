// Package promhook exports objcache hook events as Prometheus counters.
package promhook

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmhendricks/objcache"
)

// Hooks holds the counters. Groups are not used as labels: per-site group
// names would explode cardinality on a multisite network.
type Hooks struct {
	Lookups      *prometheus.CounterVec // mode, result
	Corrupt      *prometheus.CounterVec // reason
	StoreErrors  *prometheus.CounterVec // op
	SetRejected  *prometheus.CounterVec // mode
	FlushFailure *prometheus.CounterVec // reason
}

var _ objcache.Hooks = (*Hooks)(nil)

// New creates the counters under namespace and registers them with reg
// (nil => prometheus.DefaultRegisterer).
func New(namespace string, reg prometheus.Registerer) (*Hooks, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &Hooks{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objcache_lookups_total",
			Help:      "GetObject lookups by storage mode and result",
		}, []string{"mode", "result"}),
		Corrupt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objcache_corrupt_entries_total",
			Help:      "Stored entries that could not be decoded",
		}, []string{"reason"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objcache_store_errors_total",
			Help:      "Provider read/write failures",
		}, []string{"op"}),
		SetRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objcache_set_rejected_total",
			Help:      "Writes rejected by the provider",
		}, []string{"mode"}),
		FlushFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objcache_flush_failures_total",
			Help:      "Failed group flushes by reason",
		}, []string{"reason"}),
	}
	for _, c := range []prometheus.Collector{h.Lookups, h.Corrupt, h.StoreErrors, h.SetRejected, h.FlushFailure} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) Lookup(_ string, mode string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	h.Lookups.WithLabelValues(mode, result).Inc()
}

func (h *Hooks) CorruptEntry(_ string, reason string) {
	h.Corrupt.WithLabelValues(reason).Inc()
}

func (h *Hooks) StoreError(op, _ string, _ error) {
	h.StoreErrors.WithLabelValues(op).Inc()
}

func (h *Hooks) ProviderSetRejected(_ string, isGroup bool) {
	mode := "single"
	if isGroup {
		mode = "group"
	}
	h.SetRejected.WithLabelValues(mode).Inc()
}

func (h *Hooks) FlushFailed(_ string, reason objcache.FlushReason, _ error) {
	h.FlushFailure.WithLabelValues(reason.String()).Inc()
}
