package gosdml

import (
	"math"

	js "github.com/reoring/gosdml/jsonschema"
)

// JSONSchema projects the shape of v, as produced by MarshalJSON, into a JSON
// Schema. Integer widths become bounds and a format, characters are one
// character strings, units are kept as x-unit, records are closed objects
// with every member required and arrays describe their items from the
// element prototype.
func (v *Value) JSONSchema() *js.Schema {
	s := v.jsonSchema()
	s.Schema = js.Draft
	return s
}

func (v *Value) jsonSchema() *js.Schema {
	s := &js.Schema{Title: v.name, Unit: v.unit}
	switch v.cat {
	case catArray:
		s.Type = "array"
		if p := v.elementPrototype(); p != nil {
			s.Items = p.jsonSchema()
			s.Items.Title = ""
		}
	case catRecord:
		s.Type = "object"
		s.AdditionalProperties = false
		s.Properties = make(map[string]*js.Schema, len(v.members))
		for _, m := range v.members {
			ms := m.jsonSchema()
			ms.Title = ""
			s.Properties[m.name] = ms
			s.Required = append(s.Required, m.name)
		}
	default:
		switch v.baseType {
		case Int1, Int2, Int4, Int8:
			s.Type = "integer"
			s.Format = "int" + [...]string{1: "8", 2: "16", 4: "32", 8: "64"}[v.baseType.Size()]
			if v.baseType != Int8 {
				bits := uint(8*v.baseType.Size() - 1)
				s.Minimum = js.Ptr(-math.Ldexp(1, int(bits)))
				s.Maximum = js.Ptr(math.Ldexp(1, int(bits)) - 1)
			}
		case Single:
			s.Type = "number"
			s.Format = "float"
		case Double:
			s.Type = "number"
			s.Format = "double"
		case Bool:
			s.Type = "boolean"
		case Char, WChar:
			s.Type = "string"
			s.MaxLength = js.Ptr(1)
		default:
			s.Type = "string"
		}
	}
	return s
}
