package transform

import "strings"

// Chain runs transformers in order, each one reading the output of the one
// before. The first error stops the chain and nothing is returned.
type Chain []Transformer

// NewChain builds a chain from transformers.
//
// Example:
//
//	c := transform.NewChain(transform.NewFunc("json-minify", transform.MinifyJSON)).
//	    Then(base64img.Encoder())
func NewChain(ts ...Transformer) Chain {
	return Chain(ts)
}

// Then returns a new chain with ts appended. c is not modified.
func (c Chain) Then(ts ...Transformer) Chain {
	return append(c[:len(c):len(c)], ts...)
}

// Transform implements Transformer.
func (c Chain) Transform(input string) (string, error) {
	out := input
	for _, t := range c {
		var err error
		if out, err = t.Transform(out); err != nil {
			return "", err
		}
	}
	return out, nil
}

// Name lists the stages, e.g. "chain(js-minify->base64-encode)".
func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, t := range c {
		names[i] = t.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}

// NewNoop returns a transformer that passes input through unchanged.
func NewNoop() Transformer {
	return Total("noop", func(s string) string { return s })
}
