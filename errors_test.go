package gosdml_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	gosdml "github.com/reoring/gosdml"
	"github.com/reoring/gosdml/i18n"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := gosdml.Issues{
		{Path: "/a", Code: gosdml.CodeTypeMismatch, Message: "bad"},
		{Path: "/b", Code: gosdml.CodeConversion},
		{Path: "/c", Code: gosdml.CodeTruncated},
		{Path: "/d", Code: gosdml.CodeSchema},
	}
	s := iss.Error()
	if !strings.HasPrefix(s, "type_mismatch at /a: bad; conversion_error at /b") {
		t.Fatalf("summary = %q", s)
	}
	if !strings.HasSuffix(s, "(total 4)") {
		t.Fatalf("summary should count hidden issues: %q", s)
	}
}

func TestIssues_IsAndUnwrap(t *testing.T) {
	iss := gosdml.Issues{{Path: "/", Code: gosdml.CodeTruncated, Cause: io.ErrUnexpectedEOF}}
	var err error = iss
	if !errors.Is(err, gosdml.ErrTruncated) {
		t.Fatalf("errors.Is should match the code sentinel")
	}
	if errors.Is(err, gosdml.ErrSchema) {
		t.Fatalf("unrelated sentinel matched")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("errors.Is should reach the cause")
	}
	wrapped := errors.Join(errors.New("context"), err)
	if got, ok := gosdml.AsIssues(wrapped); !ok || len(got) != 1 {
		t.Fatalf("AsIssues through a wrapper = %v, %v", got, ok)
	}
	if gosdml.HasCode(errors.New("plain"), gosdml.CodeTruncated) {
		t.Fatalf("plain errors carry no code")
	}
}

func TestIssues_Translated(t *testing.T) {
	defer i18n.SetLanguage("en")
	i18n.SetLanguage("ja")
	_, err := gosdml.NewScalar("x", gosdml.Defined)
	iss, _ := gosdml.AsIssues(err)
	if iss[0].Message != "型が一致しません" {
		t.Fatalf("message = %q", iss[0].Message)
	}
}

func TestPathRef(t *testing.T) {
	p := gosdml.RootPath().Field("obs").Index(2).Field("a/b")
	if got := p.Pointer(); got != "/obs/2/a~1b" {
		t.Fatalf("pointer = %q", got)
	}
	if got := gosdml.ParsePath("/obs/2").Field("day").Pointer(); got != "/obs/2/day" {
		t.Fatalf("parsed = %q", got)
	}
	it := p.Issue(gosdml.CodeArrayIndex, "out of range", "index", 9)
	if it.Path != "/obs/2/a~1b" || it.Params["index"] != 9 || it.Offset != -1 {
		t.Fatalf("issue = %+v", it)
	}
}
