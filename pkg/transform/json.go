package transform

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/pretty"
)

var jsonBeautifyOptions = &pretty.Options{
	Width:    0, // never fold arrays onto one line
	Prefix:   "",
	Indent:   "    ",
	SortKeys: false,
}

// MinifyJSON parses input and serializes the parsed value without
// whitespace. Numbers are written in their shortest form and strings with
// minimal escaping, so the output depends only on the value, not on how the
// input spelled it. A repeated key keeps its first position and its last
// value.
func MinifyJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	return canonicalJSON(input)
}

// BeautifyJSON serializes like MinifyJSON, then indents the result with one
// member per line and four spaces per level.
func BeautifyJSON(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	compact, err := canonicalJSON(input)
	if err != nil {
		return "", err
	}
	out := pretty.PrettyOptions([]byte(compact), jsonBeautifyOptions)
	return strings.TrimRight(string(out), "\n"), nil
}

func canonicalJSON(input string) (string, error) {
	if err := validateJSON(input); err != nil {
		return "", err
	}
	v, err := decodeJSON(input)
	if err != nil {
		return "", NewError(KindInvalidJSON, "Invalid JSON: "+err.Error(), err)
	}
	var sb strings.Builder
	writeJSON(&sb, v)
	return sb.String(), nil
}

// validateJSON reports the parser's own message on failure. The token walk
// in decodeJSON does not reject trailing data, so every document goes
// through json.Unmarshal first. A RawMessage target checks syntax only, so
// numbers beyond float64 range are accepted.
func validateJSON(input string) error {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return NewError(KindInvalidJSON, "Invalid JSON: "+err.Error(), err)
	}
	return nil
}
