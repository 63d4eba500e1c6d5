package sanitizer

import (
	"html"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/blogkit/pkg/kses"
)

// DefaultExcerptLength is the excerpt size in runes used when a
// non-positive length is given.
const DefaultExcerptLength = 250

const ellipsis = "..."

// Excerpt returns a plain text summary of content: markup is removed,
// entities decoded and whitespace collapsed. Text longer than length runes
// is cut at the last word boundary and suffixed with "...".
func Excerpt(content string, length int) string {
	if length <= 0 {
		length = DefaultExcerptLength
	}

	text := html.UnescapeString(StripHTML(content))
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= length {
		return text
	}

	cut := runes[:length]
	if !unicode.IsSpace(runes[length]) {
		for i := len(cut) - 1; i > 0; i-- {
			if unicode.IsSpace(cut[i]) {
				cut = cut[:i]
				break
			}
		}
	}

	return strings.TrimRightFunc(string(cut), unicode.IsSpace) + ellipsis
}

// FirstURL returns the href of the first anchor in content, cleaned for
// storage with kses.EscURLRaw. It returns "" when there is no link or the
// link is rejected.
func FirstURL(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}

	href, ok := doc.Find("a[href]").First().Attr("href")
	if !ok || href == "" {
		return ""
	}
	return kses.EscURLRaw(href)
}
