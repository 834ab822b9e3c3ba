// Package transform provides minifiers and beautifiers for HTML, CSS,
// JavaScript and JSON.
//
// HTML, CSS and JS transforms are ordered sequences of pattern-rewrite passes,
// not parsers. They target typical, well-formed snippets: string, regex and
// template literals are not understood, so a `{` or `;` inside a JS string is
// rewritten like any other. JSON transforms validate the input first and are
// exact.
//
// Every transform is a pure function and safe for concurrent use.
package transform

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Transformer rewrites source text.
type Transformer interface {
	// Transform returns the rewritten input, or an error when the input is
	// outside the transformer's domain (invalid JSON, invalid Base64).
	Transform(input string) (string, error)

	// Name returns the transformer name for logging/debugging.
	Name() string
}

// Func adapts a plain function to the Transformer interface.
type Func struct {
	name string
	fn   func(string) (string, error)
}

// NewFunc wraps fn as a named Transformer.
func NewFunc(name string, fn func(string) (string, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Total wraps a function that cannot fail.
func Total(name string, fn func(string) string) *Func {
	return NewFunc(name, func(s string) (string, error) { return fn(s), nil })
}

// Transform calls the wrapped function.
func (f *Func) Transform(input string) (string, error) {
	return f.fn(input)
}

// Name returns the name given to NewFunc.
func (f *Func) Name() string {
	return f.name
}

// Kind selects which language pipeline applies.
type Kind string

const (
	KindHTML Kind = "html"
	KindCSS  Kind = "css"
	KindJS   Kind = "js"
	KindJSON Kind = "json"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindHTML, KindCSS, KindJS, KindJSON}

// ParseKind parses a kind name, case-insensitively. "javascript" and "htm"
// are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "htm":
		return KindHTML, nil
	case "css":
		return KindCSS, nil
	case "js", "javascript":
		return KindJS, nil
	case "json":
		return KindJSON, nil
	default:
		return "", fmt.Errorf("%w: kind %q (use html, css, js or json)", ErrUnsupported, s)
	}
}

// KindFromPath infers the kind from a file extension.
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return KindHTML, nil
	case ".css":
		return KindCSS, nil
	case ".js", ".mjs", ".cjs":
		return KindJS, nil
	case ".json":
		return KindJSON, nil
	default:
		return "", fmt.Errorf("%w: cannot infer kind from %q", ErrUnsupported, path)
	}
}

// Extension returns the file extension conventionally used for the kind.
func (k Kind) Extension() string {
	return "." + string(k)
}

// Direction selects minification or beautification.
type Direction string

const (
	Minify   Direction = "minify"
	Beautify Direction = "beautify"
)

// ParseDirection parses a direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minify", "min":
		return Minify, nil
	case "beautify", "pretty", "format":
		return Beautify, nil
	default:
		return "", fmt.Errorf("%w: direction %q (use minify or beautify)", ErrUnsupported, s)
	}
}
