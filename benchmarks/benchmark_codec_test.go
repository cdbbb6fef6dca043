package benchmarks

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	gosdml "github.com/reoring/gosdml"
	"github.com/reoring/gosdml/codec"
)

// ---- Helpers ----

// stationDoc returns a value document with n observations of m temperatures.
func stationDoc(n, m int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<init name="station"><field name="id" kind="integer4"><val>1</val></field><field name="obs" array="T">`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, `<element><field name="day" kind="integer2"><val>%d</val></field><field name="temps" kind="double" array="T" unit="oC">`, i%366)
		for j := 0; j < m; j++ {
			fmt.Fprintf(&buf, "<val>%d.5</val>", j)
		}
		buf.WriteString(`</field></element>`)
	}
	buf.WriteString(`</field></init>`)
	return buf.Bytes()
}

func station(tb testing.TB, n, m int) *gosdml.Value {
	tb.Helper()
	v, err := gosdml.FromSchema(gosdml.XMLBytes(stationDoc(n, m)))
	if err != nil {
		tb.Fatalf("schema build failed: %v", err)
	}
	return v
}

// ---- Benchmarks ----

func BenchmarkFromSchema(b *testing.B) {
	doc := stationDoc(100, 24)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := gosdml.FromSchema(gosdml.XMLBytes(doc)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshalBinary(b *testing.B) {
	v := station(b, 100, 24)
	b.SetBytes(int64(v.SizeBytes()))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := v.MarshalBinary(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSetData(b *testing.B) {
	v := station(b, 100, 24)
	data, _ := v.MarshalBinary()
	dst := v.Clone()
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := dst.SetData(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCodecs(b *testing.B) {
	ctx := context.Background()
	v := station(b, 100, 24)
	for _, name := range []string{"binary", "json", "cbor", "binary+zstd", "binary+lz4"} {
		c, err := codec.ByName(name)
		if err != nil {
			b.Fatal(err)
		}
		data, err := c.Encode(ctx, v)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name+"/encode", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := c.Encode(ctx, v); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(name+"/decode", func(b *testing.B) {
			dst := v.Clone()
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := gosdml.Decode(ctx, c, data, dst); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCanAssignFrom(b *testing.B) {
	dst, src := station(b, 10, 4), station(b, 10, 4)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if dst.CanAssignFrom(src) != gosdml.Same {
			b.Fatal("expected Same")
		}
	}
}
