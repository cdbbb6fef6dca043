package schema

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseXML builds the element tree of an XML description document.
// Namespaces are ignored; attribute and tag names are matched by local name.
func ParseXML(r io.Reader, opt Options) (*Element, error) {
	dec := xml.NewDecoder(newLimitedReader(r, opt.MaxBytes))
	// SDML documents in the wild declare legacy encodings; the payload we care
	// about is ASCII.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }

	var stack []*Element
	var root *Element
	rootClosed := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			if opt.MaxDepth > 0 && len(stack)+1 > opt.MaxDepth {
				return nil, depthError()
			}
			elem := &Element{tag: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				elem.attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				stack[len(stack)-1].append(elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 && root != nil {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, fmt.Errorf("unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].text += string(t)
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}
