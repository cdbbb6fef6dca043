package codec

import (
	"context"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	gosdml "github.com/reoring/gosdml"
)

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same value always produces identical bytes.
var encMode cbor.EncMode

// decMode decodes maps into map[string]any so records can be assigned with
// SetAny.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborCodec struct{}

// CBOR returns a codec over the plain data view of a value (see
// Value.Interface): records become maps, arrays become arrays.
func CBOR() gosdml.Codec { return cborCodec{} }

func (cborCodec) Name() string { return "cbor" }

func (cborCodec) Encode(ctx context.Context, v *gosdml.Value) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return encMode.Marshal(v.Interface())
}

func (cborCodec) Decode(ctx context.Context, data []byte, v *gosdml.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var x any
	if err := decMode.Unmarshal(data, &x); err != nil {
		return gosdml.Issues{{Path: "/", Code: gosdml.CodeParseError, Message: err.Error(), Cause: err, Offset: -1}}
	}
	return v.SetAny(x)
}
