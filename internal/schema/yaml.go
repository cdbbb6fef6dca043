package schema

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// ParseYAML builds the element tree of a YAML description document. The
// document is a mapping with the keys name, unit, kind, array, field (a list
// of mappings), element (a mapping or a list of mappings) and val (a scalar
// or a list of scalars).
//
//	name: weather
//	kind: defined
//	field:
//	  - {name: rain, kind: double, unit: mm, val: 3.5}
//	  - {name: temps, kind: double, array: true, val: [1, 2, 3]}
func ParseYAML(r io.Reader, opt Options) (*Element, error) {
	data, err := io.ReadAll(newLimitedReader(r, opt.MaxBytes))
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, io.ErrUnexpectedEOF
		}
		root = root.Content[0]
	}
	return yamlElement(root, "type", 1, opt)
}

func yamlElement(n *yaml.Node, tag string, depth int, opt Options) (*Element, error) {
	if opt.MaxDepth > 0 && depth > opt.MaxDepth {
		return nil, depthError()
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yaml %d:%d: %s description must be a mapping", n.Line, n.Column, tag)
	}
	elem := &Element{tag: tag, attrs: map[string]string{}}
	first := make(map[string][2]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if pos, dup := first[k.Value]; dup {
			return nil, &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
		}
		first[k.Value] = [2]int{k.Line, k.Column}

		switch k.Value {
		case "name", "unit", "kind":
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yaml %d:%d: %s must be a scalar", v.Line, v.Column, k.Value)
			}
			elem.attrs[k.Value] = v.Value
		case "array":
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yaml %d:%d: array must be a scalar", v.Line, v.Column)
			}
			elem.attrs["array"] = v.Value
		case TagField, TagElement:
			items := []*yaml.Node{v}
			if v.Kind == yaml.SequenceNode {
				items = v.Content
			}
			for _, it := range items {
				c, err := yamlElement(it, k.Value, depth+1, opt)
				if err != nil {
					return nil, err
				}
				elem.append(c)
			}
		case TagVal:
			switch v.Kind {
			case yaml.ScalarNode:
				elem.append(&Element{tag: TagVal, attrs: map[string]string{}, text: v.Value})
			case yaml.SequenceNode:
				for _, it := range v.Content {
					if it.Kind != yaml.ScalarNode {
						return nil, fmt.Errorf("yaml %d:%d: val entries must be scalars", it.Line, it.Column)
					}
					elem.append(&Element{tag: TagVal, attrs: map[string]string{}, text: it.Value})
				}
			default:
				return nil, fmt.Errorf("yaml %d:%d: val must be a scalar or a list", v.Line, v.Column)
			}
		default:
			return nil, fmt.Errorf("yaml %d:%d: unknown key %q", k.Line, k.Column, k.Value)
		}
	}
	return elem, nil
}
