package sanitizer

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/dmitrymomot/blogkit/pkg/kses"
)

// DefaultAllowedTags is the tag allow-list used by FilterHTML.
const DefaultAllowedTags = "<a><strong><em><ol><ul><li>"

// charsetHint makes the parser read the fragment as UTF-8.
const charsetHint = `<meta http-equiv="content-type" content="text/html; charset=utf-8">`

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once

	emptyParagraphs = strings.NewReplacer(
		"<p>&nbsp;</p>", "",
		"&nbsp;", "",
		"<p></p>", "",
	)
	inlineTags = strings.NewReplacer(
		"<b>", "<strong>",
		"</b>", "</strong>",
		"<i>", "<em>",
		"</i>", "</em>",
	)
	anchorAttrs = map[string]struct{}{"title": {}, "target": {}, "href": {}}
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// FilterHTML keeps only the DefaultAllowedTags plus extraTags (a fragment
// like "<p><h2>"), normalizes <b> and <i> to <strong> and <em>, and removes
// every attribute except title, target and href on anchors. An href whose
// scheme is not allowed by kses is dropped as well. The result is trimmed.
func FilterHTML(input, extraTags string) string {
	allowed := DefaultAllowedTags + extraTags

	s := Unslash(input)
	s = emptyParagraphs.Replace(s)
	s = inlineTags.Replace(s)
	s = StripTags(s, allowed)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(charsetHint + s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node.Data != "a" {
			node.Attr = nil
			return
		}
		node.Attr = filterAnchorAttrs(node.Attr)
	})

	out, err := doc.Html()
	if err != nil {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(StripTags(out, allowed))
}

func filterAnchorAttrs(attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		if _, ok := anchorAttrs[a.Key]; !ok || a.Namespace != "" {
			continue
		}
		if a.Key == "href" && !safeHref(a.Val) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func safeHref(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v[:1], "/#?") {
		return true
	}
	return strings.EqualFold(kses.BadProtocol(v, kses.AllowedProtocols()), v)
}

// StripHTML removes all markup and returns plain text.
// Contents of script and style elements are dropped.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeHTML allows safe formatting tags (p, a, strong, em, lists, code).
// Links get rel="nofollow"; scripts, event handlers and javascript: URLs
// are removed.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
