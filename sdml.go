package gosdml

import (
	"strconv"
	"strings"

	"github.com/reoring/gosdml/internal/schema"
	"github.com/reoring/gosdml/internal/wire"
)

// SDML renders v as a value document: an <init> element whose fields,
// elements and <val> contents reproduce v when read back with FromSchema.
func (v *Value) SDML(opt TextOpt) string {
	w := textWriter{opt: opt, values: true}
	w.open("init", v.name, true)
	w.body(v, 0)
	w.close("init", 0)
	return w.b.String()
}

// DDML renders the shape of v as a type description. Arrays of records and
// arrays of arrays describe their elements with a single <element> taken
// from the first element or the template.
func (v *Value) DDML(opt TextOpt) string {
	w := textWriter{opt: opt}
	w.open(tagType, v.name, true)
	w.body(v, 0)
	w.close(tagType, 0)
	return w.b.String()
}

type textWriter struct {
	b      strings.Builder
	opt    TextOpt
	values bool
}

func (w *textWriter) indent(level int) {
	if w.opt.Indent < 0 {
		return
	}
	w.b.WriteString(strings.Repeat(" ", w.opt.Indent+level*w.opt.Tab))
}

func (w *textWriter) newline() {
	if w.opt.Indent >= 0 {
		w.b.WriteByte('\n')
	}
}

// open writes "<tag" plus a name attribute when named is set. The caller
// finishes the start tag through attrs.
func (w *textWriter) open(tag, name string, named bool) {
	w.b.WriteByte('<')
	w.b.WriteString(tag)
	if named {
		w.b.WriteString(` name="`)
		w.b.WriteString(EscapeText(name))
		w.b.WriteByte('"')
	}
}

func (w *textWriter) close(tag string, level int) {
	w.indent(level)
	w.b.WriteString("</")
	w.b.WriteString(tag)
	w.b.WriteByte('>')
	w.newline()
}

// body writes the attributes that finish v's start tag and then its content
// one level below level.
func (w *textWriter) body(v *Value, level int) {
	if v.baseType != Defined {
		w.b.WriteString(` kind="`)
		w.b.WriteString(kindName(v.baseType))
		w.b.WriteByte('"')
	}
	if v.cat == catArray {
		w.b.WriteString(` array="T"`)
	}
	if v.unit != "" && v.unit[0] != '-' {
		w.b.WriteString(` unit="`)
		w.b.WriteString(EscapeText(v.unit))
		w.b.WriteByte('"')
	}
	w.b.WriteByte('>')
	w.newline()

	inner := level + 1
	switch {
	case v.cat == catScalar:
		if w.values {
			w.val(v, inner)
		}
	case v.cat == catArray && v.baseType != Defined:
		if !w.values {
			if p := v.Item(0); p != nil && p.cat != catScalar {
				w.child(schema.TagElement, p, inner)
			}
			return
		}
		for _, m := range v.members {
			if m.cat == catScalar {
				w.val(m, inner)
			} else {
				w.child(schema.TagElement, m, inner)
			}
		}
	case v.cat == catArray:
		if !w.values {
			if p := v.Item(0); p != nil {
				w.child(schema.TagElement, p, inner)
			}
			return
		}
		for _, m := range v.members {
			w.child(schema.TagElement, m, inner)
		}
	default:
		for _, m := range v.members {
			w.child(schema.TagField, m, inner)
		}
	}
}

func (w *textWriter) child(tag string, m *Value, level int) {
	w.indent(level)
	w.open(tag, m.name, tag == schema.TagField)
	w.body(m, level)
	w.close(tag, level)
}

func (w *textWriter) val(v *Value, level int) {
	w.indent(level)
	w.b.WriteString("<val>")
	w.b.WriteString(scalarText(v))
	w.b.WriteString("</val>")
	w.newline()
}

// scalarText renders a scalar for a <val>: floats at full precision,
// integers in decimal and text escaped. A NUL character is written as an
// empty value.
func scalarText(v *Value) string {
	switch v.baseType {
	case Single:
		return strconv.FormatFloat(float64(wire.Float32(v.data)), 'g', -1, 32)
	case Double:
		return strconv.FormatFloat(wire.Float64(v.data), 'g', -1, 64)
	case Char, WChar:
		if r, _ := v.AsChar(); r == 0 {
			return ""
		}
		return EscapeText(v.AsString())
	default:
		return EscapeText(v.AsString())
	}
}
