package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// ErrNoMatch is returned when a selector matches nothing.
var ErrNoMatch = errors.New("selector matched no elements")

// Select parses doc as HTML and returns the text content of every element
// matching selector, one element per line. Raw-text elements such as style
// and script come back verbatim.
func Select(doc, selector string) (string, error) {
	// goquery silently matches nothing for a bad selector, so compile it
	// first to report the syntax error.
	m, err := cascadia.Compile(selector)
	if err != nil {
		return "", fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	sel := d.FindMatcher(m)
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, selector)
	}

	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n"), nil
}
