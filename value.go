package gosdml

import (
	"strings"

	"github.com/reoring/gosdml/internal/wire"
)

type category uint8

const (
	catScalar category = iota
	catArray
	catRecord
)

// Value is a self-describing typed value: a scalar, a homogeneous array or a
// record of named members. A Value exclusively owns its members; placing a
// value into a new slot always copies it (see Clone and NewMember).
//
// An array that has been shrunk to zero elements keeps the last removed
// element as a template so that growing it again restores the element shape.
// The template is not a member and is not visible through Count.
//
// A Value is not safe for concurrent mutation; independent trees may be used
// from different goroutines.
type Value struct {
	name     string
	unit     string
	baseType BaseType
	cat      category
	data     []byte // scalars only
	members  []*Value
	template *Value
}

// NewScalar creates a zero-initialised scalar: numeric zero, false, NUL
// character or the empty string.
func NewScalar(name string, bt BaseType) (*Value, error) {
	if bt == Empty || bt == Defined || bt > Defined {
		return nil, typeMismatch(RootPath(), "cannot create a scalar of kind "+kindName(bt))
	}
	return newScalar(name, bt), nil
}

func newScalar(name string, bt BaseType) *Value {
	return &Value{name: name, baseType: bt, cat: catScalar, data: zeroData(bt)}
}

func zeroData(bt BaseType) []byte {
	if bt.IsString() {
		return make([]byte, wire.HeaderSize)
	}
	return make([]byte, bt.Size())
}

// NewArray creates an array of n zero scalars of kind bt.
func NewArray(name string, bt BaseType, n int) (*Value, error) {
	if bt == Empty || bt == Defined || bt > Defined {
		return nil, typeMismatch(RootPath(), "scalar arrays need a scalar kind, got "+kindName(bt))
	}
	v := &Value{name: name, baseType: bt, cat: catArray}
	if err := v.SetElementCount(n); err != nil {
		return nil, err
	}
	return v, nil
}

// NewArrayOf creates an array of n copies of elem. elem itself is not
// retained; with n == 0 a copy of it is kept as the element template.
func NewArrayOf(name string, elem *Value, n int) (*Value, error) {
	if elem == nil {
		return nil, typeMismatch(RootPath(), "nil element")
	}
	v := &Value{name: name, baseType: elem.baseType, cat: catArray}
	if elem.baseType.IsNumeric() {
		v.unit = elem.unit
	}
	v.template = elem.Clone()
	if err := v.SetElementCount(n); err != nil {
		return nil, err
	}
	return v, nil
}

// NewRecord creates a record that takes ownership of members. Member names
// must be unique ignoring case.
func NewRecord(name string, members ...*Value) (*Value, error) {
	v := &Value{name: name, baseType: Defined, cat: catRecord}
	for _, m := range members {
		if err := v.AddMember(m); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Must panics when err is non-nil. It is intended for literals in tests and
// package-level declarations.
func Must(v *Value, err error) *Value {
	if err != nil {
		panic(err)
	}
	return v
}

// Clone returns a deep copy of v. The copy of an empty array keeps a copy of
// the element template.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := &Value{name: v.name, unit: v.unit, baseType: v.baseType, cat: v.cat}
	if v.data != nil {
		c.data = append([]byte(nil), v.data...)
	}
	if len(v.members) > 0 {
		c.members = make([]*Value, len(v.members))
		for i, m := range v.members {
			c.members[i] = m.Clone()
		}
	} else if v.template != nil {
		c.template = v.template.Clone()
	}
	return c
}

// Name returns the value's name.
func (v *Value) Name() string { return v.name }

// SetName renames the value. Renaming a record member does not re-check
// uniqueness.
func (v *Value) SetName(name string) { v.name = name }

// Unit returns the unit string; only numeric scalars and arrays carry one.
func (v *Value) Unit() string { return v.unit }

// BaseType returns the storage kind.
func (v *Value) BaseType() BaseType { return v.baseType }

// TypeName returns the kind token of the base type.
func (v *Value) TypeName() string { return v.baseType.String() }

func (v *Value) IsScalar() bool { return v.cat == catScalar }
func (v *Value) IsArray() bool  { return v.cat == catArray }
func (v *Value) IsRecord() bool { return v.cat == catRecord }

// IsTextType reports a character or string scalar.
func (v *Value) IsTextType() bool { return v.IsScalar() && v.baseType.IsText() }

// Count returns the character count of a string scalar, the number of
// members of an array or record, and 0 for any other scalar.
func (v *Value) Count() int {
	switch v.cat {
	case catScalar:
		if v.baseType.IsString() {
			n, _ := wire.Dimension(v.data, 0)
			return int(n)
		}
		return 0
	default:
		return len(v.members)
	}
}

// Item returns member i (1-based). Item(1) of a scalar is the scalar itself.
// Item(0) of an array is the element template, or the first element when
// there is no template. Anything else out of range returns nil.
func (v *Value) Item(i int) *Value {
	switch {
	case v.cat == catScalar && i == 1:
		return v
	case i >= 1 && i <= len(v.members):
		return v.members[i-1]
	case v.cat == catArray && i == 0:
		if v.template != nil {
			return v.template
		}
		if len(v.members) > 0 {
			return v.members[0]
		}
	}
	return nil
}

// Members returns the members in order. The slice is a copy; the values are
// the live members.
func (v *Value) Members() []*Value {
	return append([]*Value(nil), v.members...)
}

// Member returns the record member with the given name, ignoring case, or
// nil when there is none. It fails on scalars and arrays.
func (v *Value) Member(name string) (*Value, error) {
	if v.cat != catRecord {
		return nil, typeMismatch(RootPath().Field(name), "cannot access named members of a scalar or array")
	}
	return v.findMember(name), nil
}

func (v *Value) findMember(name string) *Value {
	for _, m := range v.members {
		if strings.EqualFold(m.name, name) {
			return m
		}
	}
	return nil
}

// HasField reports whether v is a record with a member of that name.
func (v *Value) HasField(name string) bool {
	return v.cat == catRecord && v.findMember(name) != nil
}

// SetUnits sets the unit of a numeric scalar or array. Array elements and
// the template follow the array. Other values are left unchanged.
func (v *Value) SetUnits(unit string) {
	if !v.baseType.IsNumeric() || v.cat == catRecord {
		return
	}
	v.unit = unit
	if v.cat == catArray {
		for _, m := range v.members {
			m.SetUnits(unit)
		}
		if v.template != nil {
			v.template.SetUnits(unit)
		}
	}
}

// AddMember appends m to an array or record, taking ownership of it.
// Record member names must be unique; array elements must share the array's
// base type and category.
func (v *Value) AddMember(m *Value) error {
	if m == nil {
		return nil
	}
	switch v.cat {
	case catRecord:
		if v.findMember(m.name) != nil {
			return issueAt(RootPath().Field(m.name), CodeDuplicateMember, "", map[string]any{"name": m.name})
		}
	case catArray:
		if v.baseType == Empty {
			v.baseType = m.baseType
		} else if m.baseType != v.baseType {
			return typeMismatch(RootPath().Index(len(v.members)+1), "array of "+kindName(v.baseType)+" cannot hold "+kindName(m.baseType))
		}
		if proto := v.Item(0); proto != nil && proto.cat != m.cat {
			return typeMismatch(RootPath().Index(len(v.members)+1), "array elements must share one shape")
		}
		if v.baseType.IsNumeric() {
			m.SetUnits(v.unit)
		}
		v.template = nil
	default:
		return typeMismatch(RootPath(), "cannot add a member to a scalar")
	}
	v.members = append(v.members, m)
	return nil
}

// NewMember appends a deep copy of blueprint.
func (v *Value) NewMember(blueprint *Value) error {
	return v.AddMember(blueprint.Clone())
}

// AddScalar appends a new zero scalar of kind bt to an array or record and
// returns it.
func (v *Value) AddScalar(name string, bt BaseType) (*Value, error) {
	if v.cat == catScalar {
		return nil, typeMismatch(RootPath(), "cannot add a member to a scalar")
	}
	s, err := NewScalar(name, bt)
	if err != nil {
		return nil, err
	}
	if err := v.AddMember(s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetElementCount grows or shrinks an array to n elements. New elements are
// copies of element 1, or the template, or zero scalars of the array's kind.
// Shrinking to zero keeps the last removed element as the template.
func (v *Value) SetElementCount(n int) error {
	if v.cat != catArray {
		return typeMismatch(RootPath(), "cannot add or remove an array member to a non-array type")
	}
	if n < 0 {
		return issueAt(RootPath(), CodeArrayIndex, "negative element count", map[string]any{"count": n})
	}
	for len(v.members) < n {
		switch {
		case len(v.members) > 0:
			v.adoptElement(v.members[0].Clone())
		case v.template != nil:
			t := v.template
			v.template = nil
			v.adoptElement(t)
		case v.baseType != Empty && v.baseType < Defined:
			v.adoptElement(newScalar("", v.baseType))
		default:
			return typeMismatch(RootPath().Index(1), "no element shape known for an array of "+kindName(v.baseType))
		}
	}
	for len(v.members) > n {
		v.removeElement(len(v.members))
	}
	return nil
}

// DeleteElement removes element i (1-based) from an array. Removing the
// only element keeps it as the template.
func (v *Value) DeleteElement(i int) error {
	if v.cat != catArray {
		return typeMismatch(RootPath(), "cannot remove an element from a non-array type")
	}
	if i < 1 || i > len(v.members) {
		return issueAt(RootPath().Index(i), CodeArrayIndex, "", map[string]any{"index": i, "count": len(v.members)})
	}
	v.removeElement(i)
	return nil
}

func (v *Value) adoptElement(m *Value) {
	if v.baseType.IsNumeric() {
		m.SetUnits(v.unit)
	}
	v.members = append(v.members, m)
}

func (v *Value) removeElement(i int) {
	if len(v.members) == 1 {
		v.template = v.members[0]
	}
	copy(v.members[i-1:], v.members[i:])
	v.members[len(v.members)-1] = nil
	v.members = v.members[:len(v.members)-1]
}

// elementPrototype returns a value with the shape of this array's elements
// without changing the array, or nil when the shape is unknown.
func (v *Value) elementPrototype() *Value {
	if p := v.Item(0); p != nil {
		return p
	}
	if v.baseType != Empty && v.baseType < Defined {
		s := newScalar("", v.baseType)
		s.unit = v.unit
		return s
	}
	return nil
}

// SizeBytes returns the length of the binary encoding of v.
func (v *Value) SizeBytes() int {
	if v.cat == catScalar {
		return len(v.data)
	}
	n := 0
	for _, m := range v.members {
		n += m.SizeBytes()
	}
	if v.cat == catArray {
		n += wire.HeaderSize
	}
	return n
}

// Equal reports structural and value equality: same base type, category,
// count and encoded size, and recursively equal members. Scalars compare by
// their string representation.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.baseType != o.baseType || v.cat != o.cat || v.Count() != o.Count() || v.SizeBytes() != o.SizeBytes() {
		return false
	}
	if v.cat == catScalar {
		return v.AsString() == o.AsString()
	}
	for i := range v.members {
		if !v.members[i].Equal(o.members[i]) {
			return false
		}
	}
	return true
}

func kindName(bt BaseType) string {
	if s := bt.String(); s != "" {
		return s
	}
	return "empty"
}
