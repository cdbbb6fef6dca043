package codec

import (
	"context"

	"github.com/tidwall/jsonc"

	gosdml "github.com/reoring/gosdml"
)

type jsonCodec struct{}

// JSON returns a codec that writes MarshalJSON output and reads JSON or
// JSONC (line and block comments, trailing commas) through SetJSON.
func JSON() gosdml.Codec { return jsonCodec{} }

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Encode(ctx context.Context, v *gosdml.Value) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.MarshalJSON()
}

func (jsonCodec) Decode(ctx context.Context, data []byte, v *gosdml.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return v.SetJSON(jsonc.ToJSON(data))
}
