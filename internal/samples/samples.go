// Package samples embeds example documents for each supported language.
// They back the `snipfmt sample` command and the transform tests.
package samples

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed sample.*
var files embed.FS

// Get returns the sample document for a kind name (html, css, js, json).
func Get(kind string) (string, error) {
	data, err := files.ReadFile("sample." + strings.ToLower(kind))
	if err != nil {
		return "", fmt.Errorf("no sample for %q", kind)
	}
	return string(data), nil
}

// MustGet is like Get but panics when the kind has no sample.
func MustGet(kind string) string {
	s, err := Get(kind)
	if err != nil {
		panic(err)
	}
	return s
}

// Kinds lists the kinds that have a sample, sorted.
func Kinds() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	kinds := make([]string, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, strings.TrimPrefix(e.Name(), "sample."))
	}
	sort.Strings(kinds)
	return kinds
}
