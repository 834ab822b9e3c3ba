package transform

import (
	"regexp"
	"strings"
)

var (
	cssComment        = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssSpaceOpen      = compile(`\s*\{\s*`)
	cssSpaceClose     = compile(`\s*\}\s*`)
	cssSpaceColon     = compile(`\s*:\s*`)
	cssSpaceSemicolon = compile(`\s*;\s*`)
	cssSpaceComma     = compile(`\s*,\s*`)
	cssSpaceRun       = compile(`\s{2,}`)
	cssSpaceChild     = compile(`\s*>\s*`)
	cssSpaceAfterOpen = compile(`\{\s+`)
	cssSpaceBeforeEnd = compile(`\s+\}`)
)

var cssMinifyPasses = []pass{
	remove(cssComment),
	replace(cssSpaceOpen, "{"),
	replace(cssSpaceClose, "}"),
	replace(cssSpaceColon, ":"),
	replace(cssSpaceSemicolon, ";"),
	replace(cssSpaceComma, ","),
	literal("\n", ""),
	literal("\r", ""),
	replace(cssSpaceRun, " "),
	replace(cssSpaceChild, ">"),
	literal(";}", "}"),
	trim,
	replace(cssSpaceAfterOpen, "{"),
	replace(cssSpaceBeforeEnd, "}"),
}

// MinifyCSS strips comments and insignificant whitespace and drops the last
// semicolon of each block: "body { color: red; }" becomes "body{color:red}".
func MinifyCSS(input string) string {
	return apply(input, cssMinifyPasses...)
}

// BeautifyCSS puts every selector and declaration on its own line, indented
// four spaces per nesting level.
func BeautifyCSS(input string) string {
	formatted := apply(input,
		literal("{", " {\n"),
		literal("}", "\n}\n\n"),
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
		if strings.Contains(line, "}") {
			depth = max(0, depth-1)
		}
		lines[i] = indent(depth) + line
		if strings.Contains(line, "{") {
			depth++
		}
	}

	return trimSpace(strings.Join(lines, "\n"))
}
