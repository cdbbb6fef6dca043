package gosdml

import (
	"strings"

	"github.com/reoring/gosdml/internal/schema"
)

// tagType is the root tag of a type description (DDML). Any other root tag,
// typically "init", is a value document (SDML).
const tagType = "type"

// FromSchema builds a value from a description document. Scalars start at
// zero unless the node carries a <val>; scalar arrays without element
// children take one element per <val>.
//
// In a value document every <element> child of an array is a live element.
// In a type description (root tag "type") the first <element> child only
// fixes the element shape: the array starts empty with that shape as its
// template.
//
// When several LoadOpt are given the last one wins.
func FromSchema(src SchemaSource, opts ...LoadOpt) (*Value, error) {
	opt := lastLoadOpt(opts)
	root, err := loadNode(src, opt)
	if err != nil {
		return nil, err
	}
	b := builder{describeOnly: root.Tag() == tagType, maxDepth: opt.MaxDepth}
	return b.build(root, Empty, RootPath(), 1)
}

func lastLoadOpt(opts []LoadOpt) LoadOpt {
	if len(opts) == 0 {
		return LoadOpt{}
	}
	return opts[len(opts)-1]
}

func loadNode(src SchemaSource, opt LoadOpt) (schema.Node, error) {
	if src == nil {
		return nil, issueAt(RootPath(), CodeParseError, "nil schema source", nil)
	}
	n, err := src.load(schema.Options{MaxDepth: opt.MaxDepth, MaxBytes: opt.MaxBytes})
	if err != nil {
		if le, ok := schema.IsLimit(err); ok {
			iss := issueAt(RootPath(), le.Code, le.Message, nil)
			iss[0].Cause = err
			return nil, iss
		}
		iss := issueAt(RootPath(), CodeParseError, err.Error(), nil)
		iss[0].Cause = err
		return nil, iss
	}
	if n == nil {
		return nil, issueAt(RootPath(), CodeParseError, "empty document", nil)
	}
	return n, nil
}

type builder struct {
	describeOnly bool
	maxDepth     int
}

// kindOf maps the kind token of d. An empty token means a record; inherit
// supplies the kind of an array's elements that do not declare their own.
func kindOf(d schema.Descriptor, inherit BaseType, p PathRef) (BaseType, error) {
	if d.Kind == "" {
		if inherit != Empty && inherit != Defined && d.Shape() == schema.ShapeUnknown {
			return inherit, nil
		}
		return Defined, nil
	}
	bt, ok := ParseBaseType(d.Kind)
	if !ok || bt == Empty {
		return Empty, issueAt(p, CodeSchema, "", map[string]any{"kind": d.Kind, "name": d.Name})
	}
	return bt, nil
}

func (b builder) build(n schema.Node, inherit BaseType, p PathRef, depth int) (*Value, error) {
	if b.maxDepth > 0 && depth > b.maxDepth {
		return nil, issueAt(p, CodeTooDeep, "", map[string]any{"max": b.maxDepth})
	}
	d := schema.Describe(n)
	bt, err := kindOf(d, inherit, p)
	if err != nil {
		return nil, err
	}
	shape := d.Shape()
	if shape == schema.ShapeUnknown {
		if bt == Defined {
			shape = schema.ShapeRecord
		} else {
			shape = schema.ShapeScalar
		}
	}

	switch shape {
	case schema.ShapeScalar:
		v := newScalar(d.Name, bt)
		if bt.IsNumeric() {
			v.unit = d.Unit
		}
		if s, ok := schema.Val(n); ok {
			if err := v.SetString(s); err != nil {
				return nil, rebase(err, p)
			}
		}
		return v, nil

	case schema.ShapeArray:
		v := &Value{name: d.Name, baseType: bt, cat: catArray}
		if bt.IsNumeric() {
			v.unit = d.Unit
		}
		members := schema.Members(n)
		for i, m := range members {
			e, err := b.build(m, bt, p.Index(i+1), depth+1)
			if err != nil {
				return nil, err
			}
			if b.describeOnly {
				if bt.IsNumeric() {
					e.SetUnits(v.unit)
				}
				v.template = e
				break
			}
			if err := v.AddMember(e); err != nil {
				return nil, rebase(err, p)
			}
		}
		if len(members) == 0 && bt != Defined {
			for i, s := range schema.Vals(n) {
				e := newScalar("", bt)
				if err := e.SetString(s); err != nil {
					return nil, rebase(err, p.Index(i+1))
				}
				v.adoptElement(e)
			}
		}
		return v, nil

	default:
		v := &Value{name: d.Name, baseType: Defined, cat: catRecord}
		for _, m := range schema.Members(n) {
			md := schema.Describe(m)
			c, err := b.build(m, Empty, p.Field(md.Name), depth+1)
			if err != nil {
				return nil, err
			}
			if err := v.AddMember(c); err != nil {
				return nil, rebase(err, p)
			}
		}
		return v, nil
	}
}

// ValidateSchema walks a whole description document and reports every kind
// token outside the vocabulary and every duplicate field name, instead of
// stopping at the first problem. A nil result means FromSchema would
// accept the document's structure.
func ValidateSchema(src SchemaSource, opts ...LoadOpt) Issues {
	opt := lastLoadOpt(opts)
	root, err := loadNode(src, opt)
	if err != nil {
		iss, _ := AsIssues(err)
		return iss
	}
	var out Issues
	validateNode(root, Empty, RootPath(), 1, opt.MaxDepth, &out)
	return out
}

func validateNode(n schema.Node, inherit BaseType, p PathRef, depth, maxDepth int, out *Issues) {
	if maxDepth > 0 && depth > maxDepth {
		*out = AppendIssues(*out, issueAt(p, CodeTooDeep, "", map[string]any{"max": maxDepth})...)
		return
	}
	d := schema.Describe(n)
	bt, err := kindOf(d, inherit, p)
	if err != nil {
		iss, _ := AsIssues(err)
		*out = AppendIssues(*out, iss...)
	}
	seen := map[string]bool{}
	for i, m := range schema.Members(n) {
		md := schema.Describe(m)
		if m.Tag() == schema.TagElement {
			validateNode(m, bt, p.Index(i+1), depth+1, maxDepth, out)
			continue
		}
		key := strings.ToLower(md.Name)
		if seen[key] {
			*out = AppendIssues(*out, issueAt(p.Field(md.Name), CodeDuplicateMember, "", map[string]any{"name": md.Name})...)
		}
		seen[key] = true
		validateNode(m, Empty, p.Field(md.Name), depth+1, maxDepth, out)
	}
}
