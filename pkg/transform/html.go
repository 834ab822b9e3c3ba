package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
)

// preservedTags hold whitespace-significant content that the minifier must
// not touch. Order matters: a <code> inside a <pre> goes out with the <pre>.
var preservedTags = []string{"pre", "textarea", "script", "code"}

// blockTags are elements whose surrounding whitespace is insignificant.
const blockTags = `div|p|h1|h2|h3|h4|h5|h6|ul|ol|li|section|article|header|footer|nav|main|aside|` +
	`table|thead|tbody|tfoot|tr|td|th|form|fieldset|blockquote|dl|dt|dd|figure|figcaption|address|hr|br`

// voidTags never get a closing tag and do not open an indentation level.
var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "meta": true, "link": true,
}

var preservedPatterns = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(preservedTags))
	for i, tag := range preservedTags {
		res[i] = regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
	}
	return res
}()

// htmlComment skips conditional comments (<!--[if ...]>) and anything else
// opening with '['.
var htmlComment = regexp2.MustCompile(`<!--(?!\[if\s)(?!<!)[^\[][\s\S]*?-->`, regexp2.None)

var (
	htmlSpace          = compile(`\s+`)
	htmlSpaceEquals    = compile(`\s*=\s*`)
	htmlBetweenBlocks  = compile(`(?i)(</?(?:` + blockTags + `)[^>]*>)\s+(</?(?:` + blockTags + `)[^>]*>)`)
	htmlAfterBlockOpen = compile(`(?i)(<(?:` + blockTags + `)[^>]*>)\s+`)
	htmlBeforeBlockEnd = compile(`(?i)\s+(</(?:` + blockTags + `)>)`)
	htmlBeforeTagEnd   = compile(`\s+(/?>)`)
	htmlAfterTagStart  = compile(`<\s+`)
	htmlBetweenTags    = compile(`>\s+<`)
	htmlTag            = regexp.MustCompile(`</?[\w-]+[^>]*>`)
	htmlTagName        = regexp.MustCompile(`^</?([\w-]+)`)
)

var htmlMinifyPasses = []pass{
	removeLookaround(htmlComment),
	replace(htmlSpace, " "),
	replace(htmlSpaceEquals, "="),
	replace(htmlBetweenBlocks, "${1}${2}"),
	replace(htmlAfterBlockOpen, "${1}"),
	replace(htmlBeforeBlockEnd, "${1}"),
	replace(htmlBeforeTagEnd, "${1}"),
	replace(htmlAfterTagStart, "<"),
}

// placeholders swaps preserved elements for opaque tokens and back.
type placeholders struct {
	prefix string
	saved  []string
}

func newPlaceholders() *placeholders {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &placeholders{prefix: "___PRESERVED_" + nonce + "_"}
}

func (p *placeholders) protect(s string) string {
	for _, re := range preservedPatterns {
		s = re.ReplaceAllStringFunc(s, func(match string) string {
			p.saved = append(p.saved, match)
			return p.token(len(p.saved) - 1)
		})
	}
	return s
}

func (p *placeholders) restore(s string) string {
	for i, content := range p.saved {
		s = strings.Replace(s, p.token(i), content, 1)
	}
	return s
}

func (p *placeholders) token(i int) string {
	return fmt.Sprintf("%s%d___", p.prefix, i)
}

// MinifyHTML removes comments and structural whitespace. The contents of
// pre, textarea, script and code elements are kept verbatim, and whitespace
// inside inline content is collapsed but never removed so words do not merge.
func MinifyHTML(input string) string {
	p := newPlaceholders()
	out := p.protect(input)
	out = apply(out, htmlMinifyPasses...)
	return trimSpace(p.restore(out))
}

// BeautifyHTML puts every tag on its own line, indented four spaces per open
// element. Text content is not re-indented, including inside script, style,
// pre and textarea.
func BeautifyHTML(input string) string {
	formatted := htmlBetweenTags.ReplaceAllString(input, "><")

	depth := 0
	formatted = htmlTag.ReplaceAllStringFunc(formatted, func(tag string) string {
		switch {
		case strings.HasPrefix(tag, "</"):
			depth = max(0, depth-1)
			return "\n" + indent(depth) + tag
		case strings.HasSuffix(tag, "/>"), isVoidTag(tag):
			return "\n" + indent(depth) + tag
		default:
			line := "\n" + indent(depth) + tag
			depth++
			return line
		}
	})

	return trimSpace(formatted)
}

func isVoidTag(tag string) bool {
	m := htmlTagName.FindStringSubmatch(tag)
	if m == nil {
		return false
	}
	return voidTags[strings.ToLower(m[1])]
}
