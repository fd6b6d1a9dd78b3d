package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is the default value codec (Options.Codec == nil). Integers decoded
// into `any` come back as sized ints, which numeric normalization widens to
// int64; floats stay floats. Struct fields honor `msgpack:"name"` tags.
type Msgpack[V any] struct{}

var _ Codec[struct{}] = Msgpack[struct{}]{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
