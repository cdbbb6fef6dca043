// Package schema interprets schema description nodes. A description node has
// the attributes name, unit, kind and array, and children tagged "field"
// (record members), "element" (array members) and "val" (literal values).
// Documents are read from XML or YAML into the same in-memory Node tree.
package schema

import "strings"

// Tags used by the description grammar.
const (
	TagField   = "field"
	TagElement = "element"
	TagVal     = "val"
)

// KindDefined is the kind token that marks a record (or an array of records).
const KindDefined = "defined"

// Shape identifies the category a description node decodes to.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeArray
	ShapeRecord
	ShapeUnknown // no kind and no field children; the owner decides
)

// Descriptor is the flat description of one schema node.
type Descriptor struct {
	Name     string
	Unit     string
	Kind     string
	IsScalar bool
	IsArray  bool
	IsRecord bool
}

// Shape reports the category selected by the flags.
func (d Descriptor) Shape() Shape {
	switch {
	case d.IsArray:
		return ShapeArray
	case d.IsRecord:
		return ShapeRecord
	case d.IsScalar:
		return ShapeScalar
	default:
		return ShapeUnknown
	}
}

// Describe reads the description of n. An array attribute starting with t/T
// wins over everything else; otherwise kind "defined" is a record, any other
// non-empty kind is a scalar, and an empty kind with at least one field child
// is a record. Unknown kind tokens are not rejected here.
func Describe(n Node) Descriptor {
	d := Descriptor{
		Name: n.Attr("name"),
		Unit: n.Attr("unit"),
		Kind: strings.TrimSpace(n.Attr("kind")),
	}
	if a := n.Attr("array"); a != "" && (a[0] == 't' || a[0] == 'T') {
		d.IsArray = true
		return d
	}
	switch {
	case d.Kind == KindDefined:
		d.IsRecord = true
	case d.Kind != "":
		d.IsScalar = true
	case hasChild(n, TagField):
		d.IsRecord = true
	}
	return d
}

// Members returns the field and element children of n in document order.
func Members(n Node) []Node {
	var out []Node
	for _, c := range n.Children() {
		if t := c.Tag(); t == TagField || t == TagElement {
			out = append(out, c)
		}
	}
	return out
}

// Vals returns the text of every val child of n in document order.
func Vals(n Node) []string {
	var out []string
	for _, c := range n.Children() {
		if c.Tag() == TagVal {
			out = append(out, c.Text())
		}
	}
	return out
}

// Val returns the text of the first val child.
func Val(n Node) (string, bool) {
	for _, c := range n.Children() {
		if c.Tag() == TagVal {
			return c.Text(), true
		}
	}
	return "", false
}

func hasChild(n Node, tag string) bool {
	for _, c := range n.Children() {
		if c.Tag() == tag {
			return true
		}
	}
	return false
}
