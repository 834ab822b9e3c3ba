package transform

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// space is the ECMAScript whitespace set: ASCII space, tab, line breaks,
// vertical tab, the Unicode Zs separators, U+2028, U+2029 and the BOM.
const space = `[\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{feff}]`

// compile is regexp.MustCompile with every \s widened to space. Patterns
// must not use \s inside a bracket expression.
func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(strings.ReplaceAll(pattern, `\s`, space))
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// trimSpace trims the same set as space.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// pass is a single rewrite step of a pipeline.
type pass func(string) string

// apply runs passes in order. Later passes assume earlier ones already ran.
func apply(s string, passes ...pass) string {
	for _, p := range passes {
		s = p(s)
	}
	return s
}

// replace returns a pass that rewrites every match of re with repl.
// repl may reference groups as ${1}.
func replace(re *regexp.Regexp, repl string) pass {
	return func(s string) string {
		return re.ReplaceAllString(s, repl)
	}
}

// remove returns a pass that deletes every match of re.
func remove(re *regexp.Regexp) pass {
	return replace(re, "")
}

// literal returns a pass that replaces every occurrence of old.
func literal(old, repl string) pass {
	return func(s string) string {
		return strings.ReplaceAll(s, old, repl)
	}
}

// removeLookaround deletes every match of a regexp2 pattern. Used for the
// few passes that need lookahead, which RE2 does not support. The patterns
// are linear on the input so a failure can only be a timeout, which is
// unset; on error the input is returned unchanged.
func removeLookaround(re *regexp2.Regexp) pass {
	return func(s string) string {
		out, err := re.Replace(s, "", -1, -1)
		if err != nil {
			return s
		}
		return out
	}
}

func trim(s string) string {
	return trimSpace(s)
}

const indentWidth = 4

func indent(depth int) string {
	return strings.Repeat(" ", depth*indentWidth)
}
