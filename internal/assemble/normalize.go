package assemble

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Fragment is the usable content extracted from one stored document.
type Fragment struct {
	Style string // concatenated <style> contents, source order
	Body  string // body content with style elements removed
}

// Normalize extracts the style and body content of one stored document.
//
// Stored documents range from full HTML pages to bare fragments; the HTML5
// parser normalizes both shapes, synthesizing the body wrapper when the
// markup has none. Reports ok=false when the markup cannot be parsed or
// yields no content at all, in which case the document must be skipped
// rather than rendered as an empty page.
func Normalize(html string) (Fragment, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Fragment{}, false
	}

	var styles []string
	sel := doc.Find("style")
	sel.Each(func(_ int, s *goquery.Selection) {
		if css := strings.TrimSpace(s.Text()); css != "" {
			styles = append(styles, css)
		}
	})
	sel.Remove()

	body, err := doc.Find("body").Html()
	if err != nil {
		return Fragment{}, false
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return Fragment{}, false
	}

	return Fragment{
		Style: strings.Join(styles, "\n"),
		Body:  body,
	}, true
}
