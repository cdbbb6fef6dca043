package gosdml_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	gosdml "github.com/reoring/gosdml"
)

const weatherSDML = `<?xml version="1.0"?>
<init name="weather">
  <field name="rain" kind="double" unit="mm"><val>3.5</val></field>
  <field name="days" kind="integer4" array="T"><val>1</val><val>2</val><val>3</val></field>
  <field name="site" kind="string" unit="mm"><val>Hamilton</val></field>
</init>`

func loadXML(t *testing.T, doc string) *gosdml.Value {
	t.Helper()
	v, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(doc)))
	if err != nil {
		t.Fatalf("FromSchema: %v", err)
	}
	return v
}

func TestFromSchema_ValueDocument(t *testing.T) {
	v := loadXML(t, weatherSDML)
	if !v.IsRecord() || v.Name() != "weather" || v.Count() != 3 {
		t.Fatalf("root = %s %q %d", v.TypeName(), v.Name(), v.Count())
	}
	rain, _ := v.Member("rain")
	if f, _ := rain.AsFloat64(); f != 3.5 || rain.Unit() != "mm" {
		t.Fatalf("rain = %v %q", f, rain.Unit())
	}
	days, _ := v.Member("days")
	if got, _ := days.AsInts(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("days = %v", got)
	}
	site, _ := v.Member("site")
	if site.AsString() != "Hamilton" || site.Unit() != "" {
		t.Fatalf("site = %q unit %q", site.AsString(), site.Unit())
	}
}

func TestFromSchema_ElementsInheritArrayKind(t *testing.T) {
	v := loadXML(t, `<init name="xs" kind="integer4" array="T"><element><val>4</val></element><element><val>5</val></element></init>`)
	if got, _ := v.AsInts(); !reflect.DeepEqual(got, []int{4, 5}) {
		t.Fatalf("xs = %v", got)
	}
}

func TestFromSchema_TypeDescriptionKeepsTemplate(t *testing.T) {
	v := loadXML(t, `<type name="station">
  <field name="obs" array="T">
    <element>
      <field name="day" kind="integer2"/>
      <field name="rain" kind="double" unit="mm"/>
    </element>
  </field>
</type>`)
	obs, _ := v.Member("obs")
	if !obs.IsArray() || obs.Count() != 0 || obs.BaseType() != gosdml.Defined {
		t.Fatalf("obs = %s count %d", obs.TypeName(), obs.Count())
	}
	if err := obs.SetElementCount(2); err != nil {
		t.Fatal(err)
	}
	rain, _ := obs.Item(2).Member("rain")
	if rain == nil || rain.Unit() != "mm" {
		t.Fatalf("grown element lacks the described shape")
	}
}

func TestFromSchema_ValueDocumentKeepsEveryElement(t *testing.T) {
	v := loadXML(t, `<init name="obs" array="T">
  <element><field name="day" kind="integer2"><val>1</val></field></element>
  <element><field name="day" kind="integer2"><val>2</val></field></element>
</init>`)
	if v.Count() != 2 || v.AsText() != "[[day: 1], [day: 2]]" {
		t.Fatalf("obs = %s", v.AsText())
	}
}

func TestFromSchema_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		code string
		path string
	}{
		{"unknown kind", `<type><field name="a" kind="quaternion"/></type>`, gosdml.CodeSchema, "/a"},
		{"duplicate field", `<type><field name="a" kind="double"/><field name="A" kind="double"/></type>`, gosdml.CodeDuplicateMember, "/A"},
		{"bad literal", `<init><field name="n" kind="integer2"><val>x</val></field></init>`, gosdml.CodeConversion, "/n"},
		{"literal out of range", `<init><field name="n" kind="integer1" array="T"><val>1</val><val>300</val></field></init>`, gosdml.CodeConversion, "/n/2"},
		{"malformed", `<type><field`, gosdml.CodeParseError, "/"},
		{"empty", ``, gosdml.CodeParseError, "/"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(c.doc)))
			iss, ok := gosdml.AsIssues(err)
			if !ok || iss[0].Code != c.code || iss[0].Path != c.path {
				t.Fatalf("got %v (%+v), want %s at %s", err, iss, c.code, c.path)
			}
		})
	}
	if _, err := gosdml.FromSchema(nil); !gosdml.HasCode(err, gosdml.CodeParseError) {
		t.Fatalf("nil source: %v", err)
	}
}

func TestFromSchema_UnknownKindIsErrSchema(t *testing.T) {
	_, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(`<type><field name="a" kind="quaternion"/></type>`)))
	if !errors.Is(err, gosdml.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestFromSchema_Limits(t *testing.T) {
	doc := `<type><field name="a"><field name="b" kind="double"/></field></type>`
	if _, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(doc)), gosdml.LoadOpt{MaxDepth: 2}); !gosdml.HasCode(err, gosdml.CodeTooDeep) {
		t.Fatalf("expected too_deep, got %v", err)
	}
	if _, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(doc)), gosdml.LoadOpt{MaxBytes: 10}); !errors.Is(err, gosdml.ErrTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
	if _, err := gosdml.FromSchema(gosdml.XMLBytes([]byte(doc)), gosdml.LoadOpt{MaxDepth: 2}, gosdml.LoadOpt{}); err != nil {
		t.Fatalf("the last LoadOpt should win: %v", err)
	}
}

func TestFromSchema_YAMLMatchesXML(t *testing.T) {
	y, err := gosdml.FromSchema(gosdml.YAMLReader(strings.NewReader(`
name: weather
field:
  - {name: rain, kind: double, unit: mm, val: 3.5}
  - {name: days, kind: integer4, array: true, val: [1, 2, 3]}
  - {name: site, kind: string, val: Hamilton}
`)))
	if err != nil {
		t.Fatal(err)
	}
	x := loadXML(t, weatherSDML)
	if !y.Equal(x) {
		t.Fatalf("yaml %s != xml %s", y.AsText(), x.AsText())
	}
	if y.SDML(gosdml.TextOpt{Indent: -1}) != x.SDML(gosdml.TextOpt{Indent: -1}) {
		t.Fatalf("units or names differ between YAML and XML")
	}
}

// node is a host-side document tree handed over through NodeSource.
type node struct {
	tag   string
	attrs map[string]string
	kids  []gosdml.SchemaNode
	text  string
}

func (n *node) Tag() string                   { return n.tag }
func (n *node) Attr(name string) string       { return n.attrs[name] }
func (n *node) Children() []gosdml.SchemaNode { return n.kids }
func (n *node) Text() string                  { return n.text }

func field(name, kind string, kids ...gosdml.SchemaNode) *node {
	return &node{tag: "field", attrs: map[string]string{"name": name, "kind": kind}, kids: kids}
}

func TestFromSchema_NodeSource(t *testing.T) {
	root := &node{tag: "init", attrs: map[string]string{"name": "r"}, kids: []gosdml.SchemaNode{
		field("a", "double", &node{tag: "val", text: "2.25"}),
		field("b", "", field("c", "boolean", &node{tag: "val", text: "T"})),
	}}
	v, err := gosdml.FromSchema(gosdml.NodeSource(root))
	if err != nil {
		t.Fatal(err)
	}
	if got := v.AsText(); got != "[a: 2.25, b: [c: true]]" {
		t.Fatalf("value = %s", got)
	}
	_, err = gosdml.FromSchema(gosdml.NodeSource(root), gosdml.LoadOpt{MaxDepth: 2})
	iss, _ := gosdml.AsIssues(err)
	if len(iss) != 1 || iss[0].Code != gosdml.CodeTooDeep || iss[0].Path != "/b/c" {
		t.Fatalf("expected too_deep at /b/c, got %v", err)
	}
}

func TestValidateSchema_CollectsEveryProblem(t *testing.T) {
	doc := `<type name="r">
  <field name="a" kind="quaternion"/>
  <field name="b">
    <field name="c" kind="octonion"/>
  </field>
  <field name="B" kind="double"/>
</type>`
	iss := gosdml.ValidateSchema(gosdml.XMLBytes([]byte(doc)))
	if len(iss) != 3 {
		t.Fatalf("issues = %v", iss)
	}
	got := map[string]string{}
	for _, it := range iss {
		got[it.Path] = it.Code
	}
	want := map[string]string{"/a": gosdml.CodeSchema, "/b/c": gosdml.CodeSchema, "/B": gosdml.CodeDuplicateMember}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("issues = %v", got)
	}
	if iss := gosdml.ValidateSchema(gosdml.XMLBytes([]byte(weatherSDML))); iss != nil {
		t.Fatalf("valid document reported %v", iss)
	}
	if iss := gosdml.ValidateSchema(gosdml.XMLBytes([]byte("<type"))); len(iss) != 1 || iss[0].Code != gosdml.CodeParseError {
		t.Fatalf("malformed document reported %v", iss)
	}
}
