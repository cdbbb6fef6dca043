package gosdml

import "context"

// Codec converts a value tree to and from one external representation.
// Decode fills an existing tree: the tree supplies the shape and the data
// supplies the contents, exactly as SetData does for the wire format.
type Codec interface {
	// Name identifies the representation ("binary", "json", "cbor", ...).
	Name() string
	Encode(ctx context.Context, v *Value) ([]byte, error)
	Decode(ctx context.Context, data []byte, v *Value) error
}

// Encode is a convenience wrapper over Codec.Encode.
func Encode(ctx context.Context, c Codec, v *Value) ([]byte, error) {
	return c.Encode(ctx, v)
}

// Decode is a convenience wrapper over Codec.Decode that leaves v unchanged
// when decoding fails. The data is first decoded into a copy of v; only
// when that succeeds is v itself decoded, so pointers to its members stay
// live.
func Decode(ctx context.Context, c Codec, data []byte, v *Value) error {
	if err := c.Decode(ctx, data, v.Clone()); err != nil {
		return err
	}
	return c.Decode(ctx, data, v)
}
