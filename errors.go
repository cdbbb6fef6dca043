package gosdml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/gosdml/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch    = "type_mismatch"    // Wrong category accessed or incompatible assignment.
	CodeSchema          = "schema_error"     // Kind token outside the fixed vocabulary.
	CodeArrayIndex      = "array_index"      // Out-of-range structural access.
	CodeConversion      = "conversion_error" // Malformed or out-of-range text/number coercion.
	CodeTruncated       = "truncated"        // Input ended before a value was complete.
	CodeDuplicateMember = "duplicate_member"
	CodeUnknownMember   = "unknown_member"
	CodeTooDeep         = "too_deep"
	CodeParseError      = "parse_error"   // Malformed schema document.
	CodeTrailingData    = "trailing_data" // UnmarshalBinary input longer than the value.
)

// Sentinel errors matched by errors.Is against Issues carrying the same code.
var (
	ErrTypeMismatch = errors.New("gosdml: type mismatch")
	ErrSchema       = errors.New("gosdml: schema error")
	ErrArrayIndex   = errors.New("gosdml: array index out of range")
	ErrConversion   = errors.New("gosdml: conversion error")
	ErrTruncated    = errors.New("gosdml: truncated input")
)

var sentinelByCode = map[string]error{
	CodeTypeMismatch:    ErrTypeMismatch,
	CodeSchema:          ErrSchema,
	CodeArrayIndex:      ErrArrayIndex,
	CodeConversion:      ErrConversion,
	CodeTruncated:       ErrTruncated,
	CodeDuplicateMember: ErrTypeMismatch,
	CodeUnknownMember:   ErrTypeMismatch,
}

// Issue represents a single failure entry.
type Issue struct {
	Path    string // Slash path relative to the value the call was made on (for example: /obs/2/day).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, type names, etc.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the decoded buffer (-1 when unknown).
	// Params carries structured parameters (e.g., {"kind":"quaternion"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. type_mismatch at /a: cannot access named members
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue maps to the target sentinel, so callers can
// write errors.Is(err, gosdml.ErrTypeMismatch).
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if s, ok := sentinelByCode[it.Code]; ok && s == target {
			return true
		}
	}
	return false
}

// Unwrap exposes the causes of the individual issues.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// issueAt builds a single-issue error at p with a translated message.
func issueAt(p PathRef, code, hint string, params map[string]any) Issues {
	return Issues{{Path: p.Pointer(), Code: code, Message: i18n.T(code, stringParams(params)), Hint: hint, Offset: -1, Params: params}}
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func typeMismatch(p PathRef, hint string) error {
	return issueAt(p, CodeTypeMismatch, hint, nil)
}

func conversionError(p PathRef, from, to string, cause error) error {
	iss := issueAt(p, CodeConversion, fmt.Sprintf("cannot convert %s to %s", from, to), map[string]any{"from": from, "to": to})
	iss[0].Cause = cause
	return iss
}

// rebase prefixes the paths of issues raised by a member operation with the
// member's path in the enclosing tree.
func rebase(err error, p PathRef) error {
	iss, ok := AsIssues(err)
	if !ok {
		return err
	}
	base := p.Pointer()
	if base == "/" {
		return err
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Path == "" || it.Path == "/" {
			it.Path = base
		} else {
			it.Path = base + it.Path
		}
		out[i] = it
	}
	return out
}
