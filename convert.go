package gosdml

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reoring/gosdml/internal/wire"
)

// Conversions read a scalar as another Go type. Each base type supports a
// fixed set of targets; anything else is a type mismatch. Text that does not
// parse is a conversion error. Floating values are rounded to integers as
// floor(x + 0.5).

func (v *Value) cannotRead(target string) error {
	if v.cat != catScalar {
		return typeMismatch(RootPath(), "cannot retrieve a non-scalar "+kindName(v.baseType)+" value as "+target)
	}
	return typeMismatch(RootPath(), "cannot convert "+kindName(v.baseType)+" to "+target)
}

// AsInt64 reads the scalar as an integer.
func (v *Value) AsInt64() (int64, error) {
	if v.cat != catScalar {
		return 0, v.cannotRead("an integer")
	}
	switch v.baseType {
	case Int1, Int2, Int4, Int8:
		return wire.Int(v.data), nil
	case Bool:
		if v.data[0] != 0 {
			return 1, nil
		}
		return 0, nil
	case Single, Double, String, WString:
		f, err := v.AsFloat64()
		if err != nil {
			return 0, err
		}
		r := math.Floor(f + 0.5)
		if math.IsNaN(r) || r < math.MinInt64 || r >= math.MaxInt64 {
			return 0, conversionError(RootPath(), v.AsString(), "integer", nil)
		}
		return int64(r), nil
	default:
		return 0, v.cannotRead("an integer")
	}
}

// AsInt reads the scalar as an int.
func (v *Value) AsInt() (int, error) {
	n, err := v.AsInt64()
	return int(n), err
}

// AsFloat64 reads the scalar as a double.
func (v *Value) AsFloat64() (float64, error) {
	if v.cat != catScalar {
		return 0, v.cannotRead("a double")
	}
	switch v.baseType {
	case Double:
		return wire.Float64(v.data), nil
	case Single:
		return float64(wire.Float32(v.data)), nil
	case Int1, Int2, Int4, Int8:
		return float64(wire.Int(v.data)), nil
	case Bool:
		if v.data[0] != 0 {
			return 1, nil
		}
		return 0, nil
	case String, WString:
		s := strings.TrimSpace(v.AsString())
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, conversionError(RootPath(), strconv.Quote(s), "double", err)
		}
		return f, nil
	default:
		return 0, v.cannotRead("a double")
	}
}

// AsFloat32 reads the scalar as a single.
func (v *Value) AsFloat32() (float32, error) {
	if v.cat == catScalar && v.baseType == Single {
		return wire.Float32(v.data), nil
	}
	f, err := v.AsFloat64()
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// AsBool reads the scalar as a boolean. Text is true when it starts with
// t or T.
func (v *Value) AsBool() (bool, error) {
	if v.cat != catScalar {
		return false, v.cannotRead("a boolean")
	}
	switch v.baseType {
	case Bool:
		return v.data[0] != 0, nil
	case Int1, Int2, Int4, Int8:
		return wire.Int(v.data) != 0, nil
	case Char, WChar, String, WString:
		s := v.AsString()
		return s != "" && (s[0] == 't' || s[0] == 'T'), nil
	default:
		return false, v.cannotRead("a boolean")
	}
}

// AsChar reads the scalar as a character. Booleans read as 'T' or 'F';
// strings yield their first character (0 when empty).
func (v *Value) AsChar() (rune, error) {
	if v.cat != catScalar {
		return 0, v.cannotRead("a character")
	}
	switch v.baseType {
	case Bool:
		if v.data[0] != 0 {
			return 'T', nil
		}
		return 'F', nil
	case Char:
		return rune(v.data[0]), nil
	case WChar:
		return rune(wire.Uint16(v.data)), nil
	case String, WString:
		r, _ := utf8.DecodeRuneInString(v.AsString())
		if r == utf8.RuneError {
			return 0, nil
		}
		return r, nil
	default:
		return 0, v.cannotRead("a character")
	}
}

// AsString renders a scalar as text. Floating values use up to eight
// significant digits. Arrays and records render as "".
func (v *Value) AsString() string {
	if v.cat != catScalar {
		return ""
	}
	switch v.baseType {
	case String:
		return wire.DecodeString(v.data)
	case WString:
		return wire.DecodeWideString(v.data)
	case Char:
		return string(rune(v.data[0]))
	case WChar:
		return string(rune(wire.Uint16(v.data)))
	case Single:
		return strconv.FormatFloat(float64(wire.Float32(v.data)), 'g', 8, 64)
	case Double:
		return strconv.FormatFloat(wire.Float64(v.data), 'g', 8, 64)
	case Int1, Int2, Int4, Int8:
		return strconv.FormatInt(wire.Int(v.data), 10)
	case Bool:
		if v.data[0] != 0 {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// AsText renders any value for humans: scalars as AsString, arrays as
// [1, 2] and records as [a: 1, b: [1, 2]].
func (v *Value) AsText() string {
	if v.cat == catScalar {
		return v.AsString()
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, m := range v.members {
		if i > 0 {
			b.WriteString(", ")
		}
		if v.cat == catRecord {
			b.WriteString(m.name)
			b.WriteString(": ")
		}
		b.WriteString(m.AsText())
	}
	b.WriteByte(']')
	return b.String()
}

// scalarElements returns the elements of an array whose first element is a
// scalar, or nil for anything else.
func (v *Value) scalarElements() []*Value {
	if v.cat != catArray || len(v.members) == 0 || v.members[0].cat != catScalar {
		return nil
	}
	return v.members
}

func readAll[T any](v *Value, read func(*Value) (T, error)) ([]T, error) {
	elems := v.scalarElements()
	out := make([]T, len(elems))
	for i, e := range elems {
		x, err := read(e)
		if err != nil {
			return nil, rebase(err, RootPath().Index(i+1))
		}
		out[i] = x
	}
	return out, nil
}

// AsInts reads a scalar array. Non-arrays, empty arrays and arrays of
// records yield an empty slice.
func (v *Value) AsInts() ([]int, error) { return readAll(v, (*Value).AsInt) }

// AsInt64s reads a scalar array as int64 values.
func (v *Value) AsInt64s() ([]int64, error) { return readAll(v, (*Value).AsInt64) }

// AsFloat64s reads a scalar array as doubles.
func (v *Value) AsFloat64s() ([]float64, error) { return readAll(v, (*Value).AsFloat64) }

// AsFloat32s reads a scalar array as singles.
func (v *Value) AsFloat32s() ([]float32, error) { return readAll(v, (*Value).AsFloat32) }

// AsBools reads a scalar array as booleans.
func (v *Value) AsBools() ([]bool, error) { return readAll(v, (*Value).AsBool) }

// AsStrings reads a scalar array as text.
func (v *Value) AsStrings() []string {
	out, _ := readAll(v, func(e *Value) (string, error) { return e.AsString(), nil })
	return out
}

// EscapeText replaces the five XML special characters with numeric
// character references.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&#38;")
		case '<':
			b.WriteString("&#60;")
		case '>':
			b.WriteString("&#62;")
		case '"':
			b.WriteString("&#34;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
