// Package codec provides named representations of value trees: the binary
// wire format, JSON (with comments accepted on input), deterministic CBOR,
// and zstd or LZ4 compression around any of them.
package codec

import (
	"context"
	"fmt"
	"strings"

	gosdml "github.com/reoring/gosdml"
)

// ByName returns the codec registered under name. A "+zstd" or "+lz4"
// suffix wraps the base codec in that compression, for example
// "binary+zstd".
func ByName(name string) (gosdml.Codec, error) {
	base, comp, _ := strings.Cut(strings.ToLower(strings.TrimSpace(name)), "+")
	var c gosdml.Codec
	switch base {
	case "binary", "bin", "":
		c = Binary()
	case "json":
		c = JSON()
	case "cbor":
		c = CBOR()
	default:
		return nil, fmt.Errorf("codec: unknown format %q", base)
	}
	switch comp {
	case "":
		return c, nil
	case "zstd":
		return Zstd(c), nil
	case "lz4":
		return LZ4(c), nil
	default:
		return nil, fmt.Errorf("codec: unknown compression %q", comp)
	}
}

// Names lists the base formats ByName accepts.
func Names() []string { return []string{"binary", "json", "cbor"} }

// binaryCodec is the byte-exact wire format.
type binaryCodec struct{}

// Binary returns the wire format codec. Decode requires the whole input to
// be consumed.
func Binary() gosdml.Codec { return binaryCodec{} }

func (binaryCodec) Name() string { return "binary" }

func (binaryCodec) Encode(ctx context.Context, v *gosdml.Value) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.MarshalBinary()
}

func (binaryCodec) Decode(ctx context.Context, data []byte, v *gosdml.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return v.UnmarshalBinary(data)
}
