package transform

import (
	"errors"
	"strings"
	"testing"
)

// --- Kind / Direction Tests ---

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"html", KindHTML},
		{"HTM", KindHTML},
		{"css", KindCSS},
		{" js ", KindJS},
		{"JavaScript", KindJS},
		{"json", KindJSON},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if err != nil {
				t.Fatalf("ParseKind() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseKind() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := ParseKind("xml"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for xml, got %v", err)
	}
}

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"index.html", KindHTML},
		{"page.HTM", KindHTML},
		{"site/app.css", KindCSS},
		{"bundle.min.js", KindJS},
		{"module.mjs", KindJS},
		{"data.json", KindJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindFromPath(tt.path)
			if err != nil {
				t.Fatalf("KindFromPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("KindFromPath() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := KindFromPath("README"); err == nil {
		t.Error("expected error for path without known extension")
	}
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"minify":   Minify,
		"MIN":      Minify,
		"beautify": Beautify,
		"format":   Beautify,
	} {
		got, err := ParseDirection(input)
		if err != nil {
			t.Fatalf("ParseDirection(%q) error = %v", input, err)
		}
		if got != want {
			t.Errorf("ParseDirection(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseDirection("uglify"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

// --- Registry Tests ---

func TestApply_EmptyInputForAllKinds(t *testing.T) {
	for _, kind := range Kinds {
		for _, dir := range []Direction{Minify, Beautify} {
			t.Run(string(kind)+"/"+string(dir), func(t *testing.T) {
				got, err := Apply(kind, dir, "")
				if err != nil {
					t.Fatalf("Apply() error = %v", err)
				}
				if got != "" {
					t.Errorf("Apply() = %q, want empty", got)
				}
			})
		}
	}
}

func TestFor_Names(t *testing.T) {
	tr, err := For(KindCSS, Minify)
	if err != nil {
		t.Fatalf("For() error = %v", err)
	}
	if tr.Name() != "css-minify" {
		t.Errorf("Name() = %q, want %q", tr.Name(), "css-minify")
	}

	if _, err := For(Kind("xml"), Minify); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestProcess_Then(t *testing.T) {
	res, err := Process(KindJSON, Minify, `{ "a": 1 }`, Total("upper", strings.ToUpper))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Output != `{"A":1}` {
		t.Errorf("Output = %q", res.Output)
	}
	if res.Stats.OriginalSize != 10 || res.Stats.ProcessedSize != 7 {
		t.Errorf("unexpected stats %+v", res.Stats)
	}

	if _, err := Process(KindJSON, Minify, "{ invalid json }", Total("upper", strings.ToUpper)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestProcess(t *testing.T) {
	res, err := Process(KindCSS, Minify, "body { color: red; }")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Output != "body{color:red}" {
		t.Errorf("Output = %q", res.Output)
	}
	if res.Stats.SavedPercentage != "25.00%" {
		t.Errorf("SavedPercentage = %q, want 25.00%%", res.Stats.SavedPercentage)
	}
	if res.Kind != KindCSS || res.Direction != Minify {
		t.Errorf("unexpected kind/direction %q/%q", res.Kind, res.Direction)
	}
}

func TestProcess_BlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := Process(KindHTML, Minify, input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Process(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestProcess_Failure(t *testing.T) {
	res, err := Process(KindJSON, Beautify, "{ invalid json }")
	if err == nil {
		t.Fatal("expected error")
	}
	if res != nil {
		t.Errorf("expected nil result on failure, got %+v", res)
	}
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
}

// --- Func / Noop Tests ---

func TestNoop(t *testing.T) {
	tr := NewNoop()
	for _, input := range []string{"", "plain", "<p>x</p>", "  \n\t  "} {
		got, err := tr.Transform(input)
		if err != nil {
			t.Errorf("Transform() error = %v", err)
		}
		if got != input {
			t.Errorf("Transform() = %q, want %q", got, input)
		}
	}
	if tr.Name() != "noop" {
		t.Errorf("Name() = %q, want noop", tr.Name())
	}
}

func TestTotal(t *testing.T) {
	tr := Total("upper", strings.ToUpper)
	got, err := tr.Transform("abc")
	if err != nil || got != "ABC" {
		t.Errorf("Transform() = %q, %v", got, err)
	}
	if tr.Name() != "upper" {
		t.Errorf("Name() = %q", tr.Name())
	}
}

// --- Chain Tests ---

// errorTransformer always fails
type errorTransformer struct{}

func (t *errorTransformer) Transform(string) (string, error) {
	return "", errors.New("test error")
}

func (t *errorTransformer) Name() string {
	return "error"
}

func TestChain_Empty(t *testing.T) {
	c := NewChain()

	got, err := c.Transform("unchanged content")
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != "unchanged content" {
		t.Errorf("Transform() = %q", got)
	}
}

func TestChain_Order(t *testing.T) {
	c := NewChain(
		NewFunc("json-beautify", BeautifyJSON),
		NewFunc("json-minify", MinifyJSON),
	)

	got, err := c.Transform(`{ "a" : [1, 2] }`)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != `{"a":[1,2]}` {
		t.Errorf("Transform() = %q", got)
	}
}

func TestChain_ErrorPropagation(t *testing.T) {
	c := NewChain(NewNoop(), &errorTransformer{}, Total("css-minify", MinifyCSS))

	got, err := c.Transform("test")
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if got != "" {
		t.Errorf("expected no output, got %q", got)
	}
	if !strings.Contains(err.Error(), "test error") {
		t.Errorf("expected error containing 'test error', got %v", err)
	}
}

func TestChain_Then(t *testing.T) {
	base := NewChain(Total("css-minify", MinifyCSS))
	upper := base.Then(Total("upper", strings.ToUpper))
	lower := base.Then(Total("lower", strings.ToLower))

	if len(base) != 1 {
		t.Fatalf("Then() modified the receiver: %v", base.Name())
	}
	if upper.Name() != "chain(css-minify->upper)" || lower.Name() != "chain(css-minify->lower)" {
		t.Errorf("unexpected names %q, %q", upper.Name(), lower.Name())
	}

	got, err := upper.Transform("a { color: red; }")
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got != "A{COLOR:RED}" {
		t.Errorf("Transform() = %q", got)
	}
}

func TestChain_Name(t *testing.T) {
	tests := []struct {
		name string
		ts   []Transformer
		want string
	}{
		{"empty", []Transformer{}, "chain()"},
		{"single", []Transformer{NewNoop()}, "chain(noop)"},
		{"double", []Transformer{NewNoop(), &errorTransformer{}}, "chain(noop->error)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewChain(tt.ts...).Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Error Tests ---

func TestError(t *testing.T) {
	cause := errors.New("bad byte")
	err := NewError(KindInvalidBase64, "Error decoding Base64: bad byte", cause)

	if err.Error() != "Error decoding Base64: bad byte" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidBase64) {
		t.Error("expected errors.Is(err, ErrInvalidBase64)")
	}
	if errors.Is(err, ErrInvalidJSON) {
		t.Error("did not expect errors.Is(err, ErrInvalidJSON)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via Unwrap")
	}
	if KindInvalidBase64.String() != "InvalidBase64" {
		t.Errorf("String() = %q", KindInvalidBase64.String())
	}
}
