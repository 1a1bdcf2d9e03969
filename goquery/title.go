// Package goquery extracts page metadata from HTML using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/lunrstore"
)

// Ensure TitleExtractor implements lunrstore.TitleExtractor.
var _ lunrstore.TitleExtractor = (*TitleExtractor)(nil)

// titleSelectors are tried in order; the first non-empty match wins.
// Open Graph comes first because blog themes append the site name to <title>.
var titleSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:title"]`, "content"},
	{`head > title`, ""},
	{`h1`, ""},
}

// TitleExtractor extracts the displayed title of a published page.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// ExtractTitle returns the page title with whitespace collapsed.
// Returns ENOTFOUND if the page has no title.
func (e *TitleExtractor) ExtractTitle(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", lunrstore.Errorf(lunrstore.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, s := range titleSelectors {
		sel := doc.Find(s.selector).First()
		var text string
		if s.attr != "" {
			text, _ = sel.Attr(s.attr)
		} else {
			text = sel.Text()
		}
		if title := strings.Join(strings.Fields(text), " "); title != "" {
			return title, nil
		}
	}

	return "", lunrstore.Errorf(lunrstore.ENOTFOUND, "page has no title")
}
