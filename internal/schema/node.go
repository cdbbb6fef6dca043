package schema

// Node is the traversal surface the descriptor needs from a parsed document.
type Node interface {
	Tag() string
	Attr(name string) string
	Children() []Node
	Text() string
}

// Element is the concrete node produced by the XML and YAML loaders.
type Element struct {
	tag      string
	attrs    map[string]string
	children []*Element
	text     string
}

// NewElement creates a detached element. It is used by loaders and tests.
func NewElement(tag string, attrs map[string]string, children ...*Element) *Element {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Element{tag: tag, attrs: attrs, children: children}
}

// WithText sets the character data and returns e.
func (e *Element) WithText(s string) *Element {
	e.text = s
	return e
}

func (e *Element) Tag() string { return e.tag }

func (e *Element) Attr(name string) string { return e.attrs[name] }

func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

func (e *Element) Text() string { return e.text }

func (e *Element) append(c *Element) { e.children = append(e.children, c) }
