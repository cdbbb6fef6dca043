package codec

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	gosdml "github.com/reoring/gosdml"
)

// Digest is a 32-byte BLAKE3 hash of a value's wire encoding. Two values
// with the same digest encode to the same bytes.
type Digest [32]byte

// String returns the lowercase hex form.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Sum hashes the wire encoding of v.
func Sum(v *gosdml.Value) Digest {
	b, _ := v.MarshalBinary()
	return SumBytes(b)
}

// SumBytes hashes arbitrary bytes, such as an encoded file.
func SumBytes(b []byte) Digest {
	return Digest(blake3.Sum256(b))
}
