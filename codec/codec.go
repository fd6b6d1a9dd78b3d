// Package codec turns the values objcache hands out into the payloads it
// frames and stores, and back.
package codec

// Codec is the value codec of a Cache[V]. Decode must accept anything Encode
// produced; an error makes the entry a miss, so it must not panic on
// foreign bytes. In group mode each item of an aggregate is encoded on its own.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
