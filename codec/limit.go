package codec

import "fmt"

// LimitCodec guards Decode against oversized payloads, e.g. a group aggregate
// that grew without bound in a shared store. Encode is forwarded unchanged.
// MaxDecode <= 0 disables the limit.
type LimitCodec[V any] struct {
	Inner     Codec[V]
	MaxDecode int // bytes
}

var _ Codec[string] = LimitCodec[string]{}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("codec: payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
