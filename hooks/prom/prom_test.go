package promhook

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dmhendricks/objcache"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := New("test", reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h.Lookup("g", "group", true)
	h.Lookup("g", "group", true)
	h.Lookup("g", "single", false)
	h.CorruptEntry("k", "frame")
	h.StoreError("get", "k", errors.New("x"))
	h.ProviderSetRejected("k", true)
	h.FlushFailed("g", objcache.FlushUnavailable, errors.New("down"))

	if v := testutil.ToFloat64(h.Lookups.WithLabelValues("group", "hit")); v != 2 {
		t.Fatalf("group hits=%v", v)
	}
	if v := testutil.ToFloat64(h.Lookups.WithLabelValues("single", "miss")); v != 1 {
		t.Fatalf("single misses=%v", v)
	}
	if v := testutil.ToFloat64(h.FlushFailure.WithLabelValues("unavailable")); v != 1 {
		t.Fatalf("flush failures=%v", v)
	}
	if v := testutil.ToFloat64(h.SetRejected.WithLabelValues("group")); v != 1 {
		t.Fatalf("set rejected=%v", v)
	}
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New("dup", reg); err != nil {
		t.Fatal(err)
	}
	if _, err := New("dup", reg); err == nil {
		t.Fatalf("expected AlreadyRegisteredError")
	}
}
