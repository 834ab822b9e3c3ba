package transform

import (
	"strings"
	"testing"

	"github.com/jmylchreest/snipfmt/internal/samples"
)

func TestMinifyCSS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"braces", "body { color: red; }", "body{color:red}"},
		{"last semicolon dropped", "body { color: red; margin: 0; }", "body{color:red;margin:0}"},
		{"comment", "/* Comment */ body { color: red; }", "body{color:red}"},
		{"multiline comment", "/* a\n * b\n */\np { margin: 0 }", "p{margin:0}"},
		{"selectors and child combinator", "ul > li ,  a:hover {\n  color : blue ;\n}", "ul>li,a:hover{color:blue}"},
		{"nested at-rule", "@media (max-width: 600px) { a { color: red; } }", "@media (max-width:600px){a{color:red}}"},
		{"crlf", "a {\r\n  color: red;\r\n}\r\n", "a{color:red}"},
		{"value spaces kept", "p { margin: 0  auto; }", "p{margin:0 auto}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinifyCSS(tt.input); got != tt.want {
				t.Errorf("MinifyCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMinifyCSS_NeverLonger(t *testing.T) {
	input := samples.MustGet("css")
	got := MinifyCSS(input)
	if len(got) >= len(input) {
		t.Errorf("expected output shorter than input, got %d >= %d", len(got), len(input))
	}
	if strings.Contains(got, "/*") {
		t.Error("expected comments to be removed")
	}
	if strings.Contains(got, ";}") {
		t.Error("expected no ;} in output")
	}
}

func TestBeautifyCSS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{
			name:  "single rule",
			input: "body{color:red;margin:0}",
			want:  "body {\n    color:red;\n    margin:0\n}",
		},
		{
			name:  "two rules",
			input: "body{color:red}h1{font-size:2em}",
			want:  "body {\n    color:red\n}\n\nh1 {\n    font-size:2em\n}",
		},
		{
			// Blank lines from the inserted breaks stay in place.
			name:  "nested",
			input: "@media screen{a{color:red}}",
			want:  "@media screen {\n    a {\n        color:red\n    }\n\n\n}",
		},
		{
			name:  "unmatched close clamps at zero",
			input: "}a{color:red}",
			want:  "}\n\na {\n    color:red\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BeautifyCSS(tt.input); got != tt.want {
				t.Errorf("BeautifyCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSS_BeautifyThenMinifyIsLossy(t *testing.T) {
	input := "a>b{color:red;}"
	roundTrip := MinifyCSS(BeautifyCSS(input))
	if roundTrip == input {
		t.Errorf("expected round trip to differ from input %q", input)
	}
}

func TestMinifyCSS_UnicodeWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"nbsp line separator bom", "a {\u00a0color:\u2028red;\ufeff}", "a{color:red}"},
		{"ideographic space run", "a\u3000\u3000 b{c:d}", "a b{c:d}"},
		{"vertical tab", "a\v{\vc:d}", "a{c:d}"},
		{"trimmed", "\ufeff\u00a0a{c:d}\u2029", "a{c:d}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinifyCSS(tt.input); got != tt.want {
				t.Errorf("MinifyCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}
