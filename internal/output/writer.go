// Package output renders processing reports.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/snipfmt/pkg/transform"
)

// Format represents report format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
	FormatText  Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatJSONL, FormatYAML, FormatText}

// ParseFormat parses a format name, case-insensitively. "yml" is accepted.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatJSONL, FormatYAML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Record is one processed input in a report.
type Record struct {
	Source    string              `json:"source" yaml:"source"`
	Target    string              `json:"target,omitempty" yaml:"target,omitempty"`
	Kind      transform.Kind      `json:"kind" yaml:"kind"`
	Direction transform.Direction `json:"direction" yaml:"direction"`
	Stats     *transform.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Error     string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRecord builds a record from a transform result or error.
func NewRecord(source string, kind transform.Kind, dir transform.Direction, res *transform.Result, err error) Record {
	rec := Record{Source: source, Kind: kind, Direction: dir}
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	if res != nil {
		rec.Stats = res.Stats
	}
	return rec
}

// Failed reports whether the record carries an error.
func (r Record) Failed() bool {
	return r.Error != ""
}

// Writer handles report serialization.
type Writer interface {
	// Write outputs a single record.
	Write(rec Record) error

	// WriteAll outputs multiple records.
	WriteAll(recs []Record) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	case FormatText:
		return NewTextWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
