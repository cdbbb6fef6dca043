package gosdml

import (
	"bytes"
	"io"

	"github.com/reoring/gosdml/internal/schema"
)

// SchemaNode is the traversal surface of a parsed description document. Hosts
// that already hold a DOM can adapt it and pass it through NodeSource instead
// of re-serialising the document.
type SchemaNode = schema.Node

// SchemaSource abstracts over the places a description document can come
// from. Implementations are provided by this package only.
type SchemaSource interface {
	load(opt schema.Options) (schema.Node, error)
}

type xmlSource struct{ r io.Reader }

func (s xmlSource) load(opt schema.Options) (schema.Node, error) {
	return schema.ParseXML(s.r, opt)
}

type yamlSource struct{ r io.Reader }

func (s yamlSource) load(opt schema.Options) (schema.Node, error) {
	return schema.ParseYAML(s.r, opt)
}

type nodeSource struct{ n SchemaNode }

func (s nodeSource) load(schema.Options) (schema.Node, error) { return s.n, nil }

// XMLBytes reads an SDML or DDML document from memory.
func XMLBytes(b []byte) SchemaSource { return xmlSource{r: bytes.NewReader(b)} }

// XMLReader reads an SDML or DDML document from r.
func XMLReader(r io.Reader) SchemaSource { return xmlSource{r: r} }

// YAMLBytes reads a YAML description document from memory. The document is
// a type description: see FromSchema.
func YAMLBytes(b []byte) SchemaSource { return yamlSource{r: bytes.NewReader(b)} }

// YAMLReader reads a YAML description document from r.
func YAMLReader(r io.Reader) SchemaSource { return yamlSource{r: r} }

// NodeSource wraps an already parsed document.
func NodeSource(n SchemaNode) SchemaSource { return nodeSource{n: n} }
