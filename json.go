package gosdml

import (
	"bytes"
	"math"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/gosdml/internal/wire"
)

// Interface returns v as plain Go data: int64, float64, bool or string for
// scalars, []any for arrays and map[string]any for records.
func (v *Value) Interface() any {
	switch v.cat {
	case catScalar:
		switch v.baseType {
		case Int1, Int2, Int4, Int8:
			return wire.Int(v.data)
		case Single:
			return float64(wire.Float32(v.data))
		case Double:
			return wire.Float64(v.data)
		case Bool:
			return v.data[0] != 0
		default:
			return v.AsString()
		}
	case catArray:
		out := make([]any, len(v.members))
		for i, m := range v.members {
			out[i] = m.Interface()
		}
		return out
	default:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.name] = m.Interface()
		}
		return out
	}
}

// MarshalJSON renders v as JSON. Record members keep their declared order.
// Non-finite floats cannot be represented and fail.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf, RootPath()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) writeJSON(buf *bytes.Buffer, p PathRef) error {
	switch v.cat {
	case catScalar:
		x := v.Interface()
		if f, ok := x.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return conversionError(p, strconv.FormatFloat(f, 'g', -1, 64), "JSON number", nil)
		}
		b, err := json.Marshal(x)
		if err != nil {
			return conversionError(p, v.AsString(), "JSON", err)
		}
		buf.Write(b)
	case catArray:
		buf.WriteByte('[')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := m.writeJSON(buf, p.Index(i+1)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, _ := json.Marshal(m.name)
			buf.Write(k)
			buf.WriteByte(':')
			if err := m.writeJSON(buf, p.Field(m.name)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// SetJSON decodes a JSON document into v with SetAny semantics. Keys that
// repeat within an object are rejected. v is left unchanged when any part of
// the document does not fit.
func (v *Value) SetJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		iss := issueAt(RootPath(), CodeParseError, err.Error(), nil)
		iss[0].Cause = err
		return iss
	}
	if dups := DuplicateKeys(b); len(dups) > 0 {
		return dups
	}
	if err := v.Clone().SetAny(x); err != nil {
		return err
	}
	return v.SetAny(x)
}

// SetAny assigns plain Go data to v. Scalars accept bool, string, the Go
// numeric types and json.Number. Arrays accept []any and the common typed
// slices and are resized to fit. Records accept map[string]any; every key
// must name a member, and members without a key are left unchanged.
// A nil x leaves v unchanged.
//
// Problems in different members are all reported; members that could be
// assigned keep their new values.
func (v *Value) SetAny(x any) error {
	if x == nil {
		return nil
	}
	switch v.cat {
	case catScalar:
		return v.setScalarAny(x)
	case catArray:
		switch xs := x.(type) {
		case []any:
			if err := v.SetElementCount(len(xs)); err != nil {
				return err
			}
			var out Issues
			for i, e := range xs {
				if err := v.members[i].SetAny(e); err != nil {
					out = appendErr(out, rebase(err, RootPath().Index(i+1)))
				}
			}
			return issuesOrNil(out)
		case []float64:
			return v.SetFloat64s(xs)
		case []float32:
			return v.SetFloat32s(xs)
		case []int:
			return v.SetInts(xs)
		case []bool:
			return v.SetBools(xs)
		case []string:
			return v.SetStrings(xs)
		}
		return typeMismatch(RootPath(), "cannot assign a "+goKind(x)+" to an array")
	default:
		m, ok := x.(map[string]any)
		if !ok {
			return typeMismatch(RootPath(), "cannot assign a "+goKind(x)+" to a record")
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out Issues
		for _, k := range keys {
			mem := v.findMember(k)
			if mem == nil {
				out = AppendIssues(out, issueAt(RootPath().Field(k), CodeUnknownMember, "", map[string]any{"name": k})...)
				continue
			}
			if err := mem.SetAny(m[k]); err != nil {
				out = appendErr(out, rebase(err, RootPath().Field(mem.name)))
			}
		}
		return issuesOrNil(out)
	}
}

func (v *Value) setScalarAny(x any) error {
	switch t := x.(type) {
	case bool:
		return v.SetBool(t)
	case string:
		return v.SetString(t)
	case json.Number:
		if v.baseType.IsInteger() {
			if n, err := t.Int64(); err == nil {
				return v.SetInt64(n)
			}
		}
		if v.baseType.IsString() {
			return v.SetString(t.String())
		}
		f, err := t.Float64()
		if err != nil {
			return conversionError(RootPath(), t.String(), kindName(v.baseType), err)
		}
		return v.SetFloat64(f)
	case float64:
		return v.SetFloat64(t)
	case float32:
		return v.SetFloat32(t)
	case int:
		return v.SetInt64(int64(t))
	case int8:
		return v.SetInt64(int64(t))
	case int16:
		return v.SetInt64(int64(t))
	case int32:
		return v.SetInt64(int64(t))
	case int64:
		return v.SetInt64(t)
	case uint8:
		return v.SetInt64(int64(t))
	case uint16:
		return v.SetInt64(int64(t))
	case uint32:
		return v.SetInt64(int64(t))
	case uint64:
		if t > math.MaxInt64 {
			return conversionError(RootPath(), strconv.FormatUint(t, 10), kindName(v.baseType), nil)
		}
		return v.SetInt64(int64(t))
	}
	return typeMismatch(RootPath(), "cannot assign a "+goKind(x)+" to a scalar")
}

func goKind(x any) string {
	switch x.(type) {
	case map[string]any:
		return "map"
	case []any:
		return "list"
	default:
		return "value of a different shape"
	}
}

func appendErr(out Issues, err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return AppendIssues(out, iss...)
	}
	return AppendIssues(out, Issue{Path: "/", Code: CodeConversion, Message: err.Error(), Cause: err, Offset: -1})
}

func issuesOrNil(iss Issues) error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}
