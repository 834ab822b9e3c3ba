package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmylchreest/snipfmt/internal/logger"
)

type key struct {
	kind Kind
	dir  Direction
}

var registry = map[key]Transformer{
	{KindHTML, Minify}:   Total("html-minify", MinifyHTML),
	{KindHTML, Beautify}: Total("html-beautify", BeautifyHTML),
	{KindCSS, Minify}:    Total("css-minify", MinifyCSS),
	{KindCSS, Beautify}:  Total("css-beautify", BeautifyCSS),
	{KindJS, Minify}:     Total("js-minify", MinifyJS),
	{KindJS, Beautify}:   Total("js-beautify", BeautifyJS),
	{KindJSON, Minify}:   NewFunc("json-minify", MinifyJSON),
	{KindJSON, Beautify}: NewFunc("json-beautify", BeautifyJSON),
}

// For returns the transformer for a kind and direction.
func For(kind Kind, dir Direction) (Transformer, error) {
	t, ok := registry[key{kind, dir}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrUnsupported, dir, kind)
	}
	return t, nil
}

// Apply transforms input with the pipeline selected by kind and direction.
func Apply(kind Kind, dir Direction, input string) (string, error) {
	t, err := For(kind, dir)
	if err != nil {
		return "", err
	}
	return t.Transform(input)
}

// Result is the outcome of Process.
type Result struct {
	Kind      Kind      `json:"kind" yaml:"kind"`
	Direction Direction `json:"direction" yaml:"direction"`
	Output    string    `json:"-" yaml:"-"`
	Stats     *Stats    `json:"stats" yaml:"stats"`
}

// Process is the caller-side contract around Apply: blank input is rejected
// with ErrEmptyInput before any transformer runs, and a successful transform
// comes back with its Stats. On failure no output is returned.
//
// Transformers in then run on the output, in order, and the stats compare
// the input with the final output.
func Process(kind Kind, dir Direction, input string, then ...Transformer) (*Result, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	t, err := For(kind, dir)
	if err != nil {
		return nil, err
	}
	if len(then) > 0 {
		t = NewChain(t).Then(then...)
	}

	start := time.Now()
	output, err := t.Transform(input)
	elapsed := time.Since(start)
	if err != nil {
		logger.Debug("transform failed", "transformer", t.Name(), "error", err)
		return nil, err
	}

	stats := NewStats(input, output)
	stats.Duration = elapsed
	logger.Debug("transform complete",
		"transformer", t.Name(),
		"original", stats.OriginalSize,
		"processed", stats.ProcessedSize,
		"saved", stats.SavedPercentage)

	return &Result{
		Kind:      kind,
		Direction: dir,
		Output:    output,
		Stats:     stats,
	}, nil
}
