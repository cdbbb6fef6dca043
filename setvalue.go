package gosdml

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reoring/gosdml/internal/wire"
)

func (v *Value) cannotStore(what string) error {
	if v.cat != catScalar {
		return typeMismatch(RootPath(), "cannot assign "+what+" to a non-scalar "+kindName(v.baseType)+" value")
	}
	return typeMismatch(RootPath(), "cannot assign "+what+" to "+kindName(v.baseType))
}

// SetFloat64 stores x. Integer kinds truncate toward zero and reject values
// outside their range; text kinds hold the shortest decimal form.
func (v *Value) SetFloat64(x float64) error {
	if v.cat != catScalar {
		return v.cannotStore("a double")
	}
	switch v.baseType {
	case Double:
		wire.PutFloat64(v.data, x)
	case Single:
		if !math.IsInf(x, 0) && math.Abs(x) > math.MaxFloat32 {
			return conversionError(RootPath(), strconv.FormatFloat(x, 'g', -1, 64), "single", nil)
		}
		wire.PutFloat32(v.data, float32(x))
	case Int1, Int2, Int4, Int8:
		t := math.Trunc(x)
		if math.IsNaN(t) || t < math.MinInt64 || t >= math.MaxInt64 {
			return conversionError(RootPath(), strconv.FormatFloat(x, 'g', -1, 64), kindName(v.baseType), nil)
		}
		return v.SetInt64(int64(t))
	case Bool:
		v.data[0] = boolByte(x != 0)
	case String, WString:
		v.setText(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		return v.cannotStore("a double")
	}
	return nil
}

// SetFloat32 stores x; see SetFloat64.
func (v *Value) SetFloat32(x float32) error {
	if v.cat == catScalar && v.baseType.IsString() {
		v.setText(strconv.FormatFloat(float64(x), 'g', -1, 32))
		return nil
	}
	return v.SetFloat64(float64(x))
}

// SetInt64 stores n. Narrow integer kinds reject values outside their range.
func (v *Value) SetInt64(n int64) error {
	if v.cat != catScalar {
		return v.cannotStore("an integer")
	}
	switch v.baseType {
	case Int1, Int2, Int4, Int8:
		bits := uint(8 * v.baseType.Size())
		if bits < 64 {
			lo, hi := -int64(1)<<(bits-1), int64(1)<<(bits-1)-1
			if n < lo || n > hi {
				return conversionError(RootPath(), strconv.FormatInt(n, 10), kindName(v.baseType), nil)
			}
		}
		wire.PutInt(v.data, n)
	case Single, Double:
		return v.SetFloat64(float64(n))
	case Bool:
		v.data[0] = boolByte(n != 0)
	case String, WString:
		v.setText(strconv.FormatInt(n, 10))
	default:
		return v.cannotStore("an integer")
	}
	return nil
}

// SetInt stores n; see SetInt64.
func (v *Value) SetInt(n int) error { return v.SetInt64(int64(n)) }

// SetBool stores b: 1 or 0 for numeric kinds, "true" or "false" for strings
// and 'T' or 'F' for characters.
func (v *Value) SetBool(b bool) error {
	if v.cat != catScalar {
		return v.cannotStore("a boolean")
	}
	switch v.baseType {
	case Bool:
		v.data[0] = boolByte(b)
	case Int1, Int2, Int4, Int8, Single, Double:
		if b {
			return v.SetInt64(1)
		}
		return v.SetInt64(0)
	case String, WString:
		v.setText(strconv.FormatBool(b))
	case Char, WChar:
		if b {
			return v.SetChar('T')
		}
		return v.SetChar('F')
	default:
		return v.cannotStore("a boolean")
	}
	return nil
}

// SetChar stores r. Numeric kinds take its code point.
func (v *Value) SetChar(r rune) error {
	if v.cat != catScalar {
		return v.cannotStore("a character")
	}
	switch v.baseType {
	case Char:
		if r < 0 || r > 0xFF {
			return conversionError(RootPath(), strconv.QuoteRune(r), "char", nil)
		}
		v.data[0] = byte(r)
	case WChar:
		if r < 0 || r > 0xFFFF {
			return conversionError(RootPath(), strconv.QuoteRune(r), "wchar", nil)
		}
		wire.PutUint16(v.data, uint16(r))
	case Int1, Int2, Int4, Int8:
		return v.SetInt64(int64(r))
	case Single, Double:
		return v.SetFloat64(float64(r))
	case Bool, String, WString:
		return v.SetString(string(r))
	default:
		return v.cannotStore("a character")
	}
	return nil
}

// SetString parses s into the scalar. Booleans are true when s starts with
// t or T. An empty string leaves integers unchanged and sets floats to zero.
// Characters take the first character of s.
func (v *Value) SetString(s string) error {
	if v.cat != catScalar {
		return v.cannotStore("a string")
	}
	switch v.baseType {
	case String, WString:
		v.setText(s)
	case Bool:
		v.data[0] = boolByte(s != "" && (s[0] == 't' || s[0] == 'T'))
	case Int1, Int2, Int4, Int8:
		t := strings.TrimSpace(s)
		if t == "" {
			return nil
		}
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return conversionError(RootPath(), strconv.Quote(s), kindName(v.baseType), err)
		}
		return v.SetInt64(n)
	case Single, Double:
		t := strings.TrimSpace(s)
		if t == "" {
			return v.SetFloat64(0)
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return conversionError(RootPath(), strconv.Quote(s), kindName(v.baseType), err)
		}
		return v.SetFloat64(f)
	case Char, WChar:
		r, _ := utf8.DecodeRuneInString(s)
		if s == "" {
			r = 0
		}
		return v.SetChar(r)
	default:
		return v.cannotStore("a string")
	}
	return nil
}

func (v *Value) setText(s string) {
	if v.baseType == WString {
		v.data = wire.WideString(s)
	} else {
		v.data = wire.String(s)
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// SetValue assigns src to v. Scalars convert through the reading that fits
// v's kind; arrays are resized to src's count and assigned element by
// element; records are assigned by position when CanAssignFrom reports Same
// and by member name otherwise. Categories must match.
func (v *Value) SetValue(src *Value) error {
	return v.assign(src, RootPath())
}

func (v *Value) assign(src *Value, p PathRef) error {
	if src == nil {
		return nil
	}
	if v.cat != src.cat {
		return typeMismatch(p, "cannot assign a "+src.shapeName()+" to a "+v.shapeName())
	}
	switch v.cat {
	case catScalar:
		return rebase(v.assignScalar(src), p)
	case catArray:
		if err := v.SetElementCount(len(src.members)); err != nil {
			return rebase(err, p)
		}
		for i, s := range src.members {
			if err := v.members[i].assign(s, p.Index(i+1)); err != nil {
				return err
			}
		}
		return nil
	default:
		r := v.CanAssignFrom(src)
		if r == Bad {
			return typeMismatch(p, "incompatible record")
		}
		for i, s := range src.members {
			d := v.members[i]
			sp := p.Index(i + 1)
			if r != Same {
				d = v.findMember(s.name)
				sp = p.Field(s.name)
			}
			if err := d.assign(s, sp); err != nil {
				return err
			}
		}
		return nil
	}
}

func (v *Value) assignScalar(src *Value) error {
	switch v.baseType {
	case Int1, Int2, Int4, Int8:
		n, err := src.AsInt64()
		if err != nil {
			return err
		}
		return v.SetInt64(n)
	case Double:
		f, err := src.AsFloat64()
		if err != nil {
			return err
		}
		return v.SetFloat64(f)
	case Single:
		f, err := src.AsFloat32()
		if err != nil {
			return err
		}
		return v.SetFloat32(f)
	case Bool:
		b, err := src.AsBool()
		if err != nil {
			return err
		}
		return v.SetBool(b)
	default:
		return v.SetString(src.AsString())
	}
}

func (v *Value) shapeName() string {
	switch v.cat {
	case catScalar:
		return "scalar"
	case catArray:
		return "array"
	default:
		return "record"
	}
}

// setAll resizes a scalar array to len(xs) and stores each item with set.
func setAll[T any](v *Value, xs []T, set func(*Value, T) error) error {
	if v.cat != catArray {
		return typeMismatch(RootPath(), "cannot assign a list to a "+v.shapeName())
	}
	if p := v.elementPrototype(); p == nil || p.cat != catScalar {
		return typeMismatch(RootPath(), "cannot assign a list of scalars to an array of "+kindName(v.baseType))
	}
	if err := v.SetElementCount(len(xs)); err != nil {
		return err
	}
	for i, x := range xs {
		if err := set(v.members[i], x); err != nil {
			return rebase(err, RootPath().Index(i+1))
		}
	}
	return nil
}

// SetFloat64s resizes a scalar array to len(xs) and stores each item.
func (v *Value) SetFloat64s(xs []float64) error { return setAll(v, xs, (*Value).SetFloat64) }

// SetFloat32s resizes a scalar array to len(xs) and stores each item.
func (v *Value) SetFloat32s(xs []float32) error { return setAll(v, xs, (*Value).SetFloat32) }

// SetInts resizes a scalar array to len(xs) and stores each item.
func (v *Value) SetInts(xs []int) error { return setAll(v, xs, (*Value).SetInt) }

// SetBools resizes a scalar array to len(xs) and stores each item.
func (v *Value) SetBools(xs []bool) error { return setAll(v, xs, (*Value).SetBool) }

// SetStrings resizes a scalar array to len(xs) and parses each item.
func (v *Value) SetStrings(xs []string) error { return setAll(v, xs, (*Value).SetString) }
