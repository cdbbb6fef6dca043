package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	gosdml "github.com/reoring/gosdml"
)

// MaxDecompressed bounds the size a compressed payload may expand to.
const MaxDecompressed = 256 << 20

// zstdEncoder and zstdDecoder are reused across calls; both are safe for
// concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecompressed))
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

type zstdCodec struct{ inner gosdml.Codec }

// Zstd wraps inner so its output is a zstd frame.
func Zstd(inner gosdml.Codec) gosdml.Codec { return zstdCodec{inner: inner} }

func (c zstdCodec) Name() string { return c.inner.Name() + "+zstd" }

func (c zstdCodec) Encode(ctx context.Context, v *gosdml.Value) ([]byte, error) {
	raw, err := c.inner.Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

func (c zstdCodec) Decode(ctx context.Context, data []byte, v *gosdml.Value) error {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("zstd decompress: %w", err)
	}
	return c.inner.Decode(ctx, raw, v)
}

type lz4Codec struct{ inner gosdml.Codec }

// LZ4 wraps inner so its output is an LZ4 frame.
func LZ4(inner gosdml.Codec) gosdml.Codec { return lz4Codec{inner: inner} }

func (c lz4Codec) Name() string { return c.inner.Name() + "+lz4" }

func (c lz4Codec) Encode(ctx context.Context, v *gosdml.Value) ([]byte, error) {
	raw, err := c.inner.Encode(ctx, v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (c lz4Codec) Decode(ctx context.Context, data []byte, v *gosdml.Value) error {
	r := io.LimitReader(lz4.NewReader(bytes.NewReader(data)), MaxDecompressed+1)
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("lz4 decompress: %w", err)
	}
	if len(raw) > MaxDecompressed {
		return fmt.Errorf("lz4 decompress: payload exceeds %d bytes", MaxDecompressed)
	}
	return c.inner.Decode(ctx, raw, v)
}
