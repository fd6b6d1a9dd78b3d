package objcache

import (
	"errors"
	"fmt"

	pr "github.com/dmhendricks/objcache/provider"
)

var (
	ErrNoProvider = errors.New("objcache: provider is required")
	ErrEmptyKey   = errors.New("objcache: key must not be empty")
)

// FlushReason classifies a failed group flush.
type FlushReason int

const (
	FlushOther FlushReason = iota
	FlushNotFound
	FlushUnavailable
)

func (r FlushReason) String() string {
	switch r {
	case FlushNotFound:
		return "not_found"
	case FlushUnavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// FlushError is returned by FlushGroupErr.
type FlushError struct {
	Group  string
	Reason FlushReason
	Err    error
}

func (e *FlushError) Error() string {
	switch e.Reason {
	case FlushNotFound:
		return fmt.Sprintf("flush group %q: nothing to delete", e.Group)
	case FlushUnavailable:
		return fmt.Sprintf("flush group %q: store unavailable: %v", e.Group, e.Err)
	default:
		return fmt.Sprintf("flush group %q: %v", e.Group, e.Err)
	}
}

func (e *FlushError) Unwrap() error { return e.Err }

func newFlushError(group string, err error) *FlushError {
	fe := &FlushError{Group: group, Err: err}
	switch {
	case errors.Is(err, pr.ErrNotFound):
		fe.Reason = FlushNotFound
	case errors.Is(err, pr.ErrUnavailable):
		fe.Reason = FlushUnavailable
	default:
		fe.Reason = FlushOther
	}
	return fe
}
