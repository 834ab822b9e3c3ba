package transform

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// jsLineComment matches a // comment that starts a line or follows
// whitespace, unless the rest of the line looks like a URL.
var jsLineComment = regexp2.MustCompile(`(?:^|\s)//(?![^\n]*https?:).*$`, regexp2.Multiline)

var (
	jsBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	jsSpace        = compile(`\s+`)
	jsSpaceRun     = compile(`\s{2,}`)
	jsPunctuation  = compile(`\s*([{}()\[\];,.<>!&|+\-*/%=])\s*`)
	jsAfterOpen    = compile(`\{\s+`)
	jsBeforeClose  = compile(`\s+\}`)
)

// jsKeywords need a space on each side once punctuation spacing is gone.
var jsKeywords = []string{
	"return", "var", "let", "const", "function", "if", "else", "for", "while",
	"do", "switch", "case", "break", "continue", "new", "typeof", "instanceof",
	"delete", "in", "of",
}

var jsKeywordPasses = func() []pass {
	passes := make([]pass, len(jsKeywords))
	for i, kw := range jsKeywords {
		passes[i] = replace(regexp.MustCompile(`\b`+kw+`\b`), " "+kw+" ")
	}
	return passes
}()

var jsMinifyPasses = func() []pass {
	passes := []pass{
		removeLookaround(jsLineComment),
		remove(jsBlockComment),
		replace(jsSpace, " "),
		replace(jsPunctuation, "${1}"),
	}
	passes = append(passes, jsKeywordPasses...)
	return append(passes,
		replace(jsSpaceRun, " "),
		literal("\n", ""),
		literal("\r", ""),
		replace(jsAfterOpen, "{"),
		replace(jsBeforeClose, "}"),
		trim,
	)
}()

// MinifyJS strips comments and whitespace from JavaScript, keeping a single
// space around reserved keywords.
//
// Braces, semicolons and keywords inside string, regex or template literals
// are rewritten too.
func MinifyJS(input string) string {
	return apply(input, jsMinifyPasses...)
}

// BeautifyJS breaks lines after braces and semicolons and indents blocks by
// four spaces.
func BeautifyJS(input string) string {
	formatted := apply(input,
		literal("{", " {\n"),
		literal("}", "\n}\n"),
		literal(";", ";\n"),
	)

	lines := strings.Split(formatted, "\n")
	depth := 0
	for i, line := range lines {
		line = trimSpace(line)
		if line == "" {
			lines[i] = ""
			continue
		}
		if strings.HasPrefix(line, "}") {
			depth = max(0, depth-1)
		}
		lines[i] = indent(depth) + line
		if strings.HasSuffix(line, "{") {
			depth++
		}
	}

	return trimSpace(strings.Join(lines, "\n"))
}
