package gosdml

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

// dupFrame is one open JSON container. Object keys are remembered folded to
// lower case because record members are matched ignoring case.
type dupFrame struct {
	kind         containerKind
	path         PathRef
	keys         map[string]struct{}
	key          string
	expectingKey bool
	index        int
}

// next returns the path of the value that starts now and advances the frame
// past it.
func (f *dupFrame) next() PathRef {
	if f.kind == kindArray {
		f.index++
		return f.path.Index(f.index)
	}
	f.expectingKey = true
	return f.path.Field(f.key)
}

// DuplicateKeys reports every object key of a JSON document that repeats
// within its object, ignoring case. Syntax errors end the scan silently;
// they are reported by the decoder that reads the document.
func DuplicateKeys(data []byte) Issues {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out Issues
	var stack []*dupFrame
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		var top *dupFrame
		if n := len(stack); n > 0 {
			top = stack[n-1]
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				p := RootPath()
				if top != nil {
					p = top.next()
				}
				f := &dupFrame{kind: kindArray, path: p}
				if v == '{' {
					f.kind = kindObject
					f.keys = make(map[string]struct{})
					f.expectingKey = true
				}
				stack = append(stack, f)
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		case string:
			if top != nil && top.kind == kindObject && top.expectingKey {
				k := strings.ToLower(v)
				if _, ok := top.keys[k]; ok {
					out = AppendIssues(out, issueAt(top.path.Field(v), CodeDuplicateMember, "", map[string]any{"name": v})...)
				}
				top.keys[k] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			if top != nil {
				top.next()
			}
		default:
			if top != nil {
				top.next()
			}
		}
	}
}
