package redis

import (
	"errors"
	"net"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/dmhendricks/objcache/provider"
)

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("err=%v want ErrNilClient", err)
	}
}

func TestClassify(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	other := errors.New("WRONGTYPE")

	cases := []struct {
		name        string
		in          error
		unavailable bool
	}{
		{"closed", goredis.ErrClosed, true},
		{"dial", opErr, true},
		{"server", other, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.in)
			if errors.Is(got, pr.ErrUnavailable) != tc.unavailable {
				t.Fatalf("unavailable=%v want %v (err=%v)", !tc.unavailable, tc.unavailable, got)
			}
			if !errors.Is(got, tc.in) {
				t.Fatalf("original error lost: %v", got)
			}
		})
	}
}
