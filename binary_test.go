package gosdml_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	gosdml "github.com/reoring/gosdml"
)

func TestMarshalBinary_Layout(t *testing.T) {
	a := gosdml.Must(gosdml.NewArray("a", gosdml.Int4, 0))
	_ = a.SetInts([]int{1, 2})
	s := scalar(t, "s", gosdml.String)
	_ = s.SetString("ab")
	r := gosdml.Must(gosdml.NewRecord("r", a, s))

	got, err := r.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{2, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 'a', 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("encoding = %v, want %v", got, want)
	}
	if len(got) != r.SizeBytes() {
		t.Fatalf("SizeBytes %d != encoded length %d", r.SizeBytes(), len(got))
	}
	appended, _ := r.AppendBinary([]byte{9})
	if !bytes.Equal(appended[1:], want) || appended[0] != 9 {
		t.Fatalf("AppendBinary = %v", appended)
	}
}

func TestUnmarshalBinary_StringArrayIntoEmptyArray(t *testing.T) {
	src := gosdml.Must(gosdml.NewArray("s", gosdml.String, 0))
	if err := src.SetStrings([]string{"1", "2", "3"}); err != nil {
		t.Fatal(err)
	}
	b, _ := src.MarshalBinary()

	dst := gosdml.Must(gosdml.NewArray("d", gosdml.String, 0))
	if err := dst.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if dst.Count() != 3 {
		t.Fatalf("count = %d", dst.Count())
	}
	if got, _ := dst.AsInts(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("values = %v", got)
	}
}

const stationSDML = `<init name="station">
  <field name="id" kind="integer4"><val>7</val></field>
  <field name="label" kind="wstring"><val>Lincoln é</val></field>
  <field name="obs" array="T">
    <element>
      <field name="day" kind="integer2"><val>1</val></field>
      <field name="temps" kind="double" array="T" unit="oC"><val>1.5</val><val>2.5</val></field>
    </element>
    <element>
      <field name="day" kind="integer2"><val>2</val></field>
      <field name="temps" kind="double" array="T" unit="oC"><val>3.5</val></field>
    </element>
  </field>
</init>`

func TestBinary_NestedRoundTripIntoDescription(t *testing.T) {
	src, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(stationSDML)))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := src.MarshalBinary()

	dst, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(src.DDML(gosdml.TextOpt{Tab: 2}))))
	if err != nil {
		t.Fatal(err)
	}
	obs, _ := dst.Member("obs")
	if obs.Count() != 0 {
		t.Fatalf("description should start with an empty obs array, got %d", obs.Count())
	}
	if err := dst.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if !dst.Equal(src) {
		t.Fatalf("decoded %s, want %s", dst.AsText(), src.AsText())
	}
	if got, want := dst.SDML(gosdml.TextOpt{Tab: 2}), src.SDML(gosdml.TextOpt{Tab: 2}); got != want {
		t.Fatalf("SDML differs:\n%s\nwant\n%s", got, want)
	}
	temps, _ := obs.Item(2).Member("temps")
	if temps.Count() != 1 || temps.Item(1).Unit() != "oC" {
		t.Fatalf("temps = %s unit %q", temps.AsText(), temps.Item(1).Unit())
	}
}

func TestBinary_ShapeFollowsData(t *testing.T) {
	v, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(stationSDML)))
	if err != nil {
		t.Fatal(err)
	}
	orig, _ := v.MarshalBinary()
	obs, _ := v.Member("obs")
	_ = obs.SetElementCount(5)
	grown, _ := v.MarshalBinary()
	if _, err := v.SetData(orig); err != nil {
		t.Fatal(err)
	}
	if obs.Count() != 2 {
		t.Fatalf("decode should shrink obs to 2, got %d", obs.Count())
	}
	_ = obs.SetElementCount(0)
	if _, err := v.SetData(grown); err != nil {
		t.Fatal(err)
	}
	if obs.Count() != 5 {
		t.Fatalf("decode should grow obs to 5, got %d", obs.Count())
	}
}

func TestUnmarshalBinary_TruncatedIsAtomic(t *testing.T) {
	id := scalar(t, "id", gosdml.Int4)
	_ = id.SetInt(42)
	s := scalar(t, "s", gosdml.String)
	_ = s.SetString("hello")
	r := gosdml.Must(gosdml.NewRecord("r", id, s))
	b, _ := r.MarshalBinary()

	dst := r.Clone()
	m, _ := dst.Member("id")
	_ = m.SetInt(1)
	before := dst.Clone()

	err := dst.UnmarshalBinary(b[:10])
	if !errors.Is(err, gosdml.ErrTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
	iss, _ := gosdml.AsIssues(err)
	if iss[0].Path != "/s" || iss[0].Offset != 4 {
		t.Fatalf("issue = %+v", iss[0])
	}
	if !dst.Equal(before) {
		t.Fatalf("failed decode modified the value: %s", dst.AsText())
	}
	if _, err := dst.SetData(b[:10]); !errors.Is(err, gosdml.ErrTruncated) || !dst.Equal(before) {
		t.Fatalf("SetData should be atomic too: %v", err)
	}
}

func TestUnmarshalBinary_TrailingData(t *testing.T) {
	v := scalar(t, "x", gosdml.Int2)
	err := v.UnmarshalBinary([]byte{1, 0, 0})
	if !gosdml.HasCode(err, gosdml.CodeTrailingData) {
		t.Fatalf("expected trailing_data, got %v", err)
	}
	if v.AsString() != "0" {
		t.Fatalf("value changed to %s", v.AsString())
	}
	n, err := v.SetData([]byte{1, 0, 0})
	if err != nil || n != 2 || v.AsString() != "1" {
		t.Fatalf("SetData = %d, %v, value %s", n, err, v.AsString())
	}
}

func TestSetData_EmptyBuffer(t *testing.T) {
	a := gosdml.Must(gosdml.NewArray("a", gosdml.Double, 3))
	if n, err := a.SetData(nil); err != nil || n != 0 || a.Count() != 0 {
		t.Fatalf("empty buffer on array: n=%d err=%v count=%d", n, err, a.Count())
	}
	s := scalar(t, "s", gosdml.Int4)
	_ = s.SetInt(9)
	if n, err := s.SetData(nil); err != nil || n != 0 || s.AsString() != "9" {
		t.Fatalf("empty buffer on scalar: n=%d err=%v value=%s", n, err, s.AsString())
	}
}

func TestSetData_MissingTrailingArrayBecomesEmpty(t *testing.T) {
	r := gosdml.Must(gosdml.NewRecord("r",
		scalar(t, "a", gosdml.Int4),
		gosdml.Must(gosdml.NewArray("xs", gosdml.Double, 2)),
	))
	n, err := r.SetData([]byte{5, 0, 0, 0})
	if err != nil || n != 4 {
		t.Fatalf("SetData = %d, %v", n, err)
	}
	if got := r.AsText(); got != "[a: 5, xs: []]" {
		t.Fatalf("value = %s", got)
	}
}

func TestSetData_HugeCountRejected(t *testing.T) {
	a := gosdml.Must(gosdml.NewArray("a", gosdml.Double, 0))
	_, err := a.SetData([]byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0})
	if !errors.Is(err, gosdml.ErrTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
	if a.Count() != 0 {
		t.Fatalf("count = %d", a.Count())
	}
}

func TestSetData_ZeroWidthElementsBounded(t *testing.T) {
	a := gosdml.Must(gosdml.NewArrayOf("a", gosdml.Must(gosdml.NewRecord("r")), 0))
	_, err := a.SetData([]byte{0x40, 0x42, 0x0f, 0})
	if !errors.Is(err, gosdml.ErrTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
	if a.Count() != 0 {
		t.Fatalf("count = %d", a.Count())
	}
	n, err := a.SetData([]byte{3, 0, 0, 0})
	if err != nil || n != 4 || a.Count() != 3 {
		t.Fatalf("small count: n=%d count=%d err=%v", n, a.Count(), err)
	}
}

func TestCopyFrom(t *testing.T) {
	src := gosdml.Must(gosdml.NewArray("src", gosdml.Single, 0))
	_ = src.SetFloat32s([]float32{0.5, 1.5})
	dst := gosdml.Must(gosdml.NewArray("dst", gosdml.Single, 0))
	if err := dst.CopyFrom(src); err != nil {
		t.Fatal(err)
	}
	if !dst.Equal(src) {
		t.Fatalf("dst = %s", dst.AsText())
	}
}
