package autop

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/blogkit/pkg/htmlsplit"
)

// blocks is the alternation of block-level element names.
const blocks = `(?:table|thead|tfoot|caption|col|colgroup|tbody|tr|td|th|div|dl|dd|dt|ul|ol|li|pre|form|map|area|blockquote|address|math|style|p|h[1-6]|hr|fieldset|legend|section|article|aside|hgroup|header|footer|nav|figure|figcaption|details|menu|summary)`

const (
	newlineMarker     = "<!-- wpnl -->"
	paddedNewline     = " " + newlineMarker + " "
	preservedNewline  = "<WPPreserveNewline />"
	preTagPlaceholder = "<pre pre-tag-%d></pre>"
)

var (
	reDoubleBr     = regexp.MustCompile(`<br\s*/?>\s*<br\s*/?>`)
	reBlockOpen    = regexp.MustCompile(`(<` + blocks + `[\s/>])`)
	reBlockClose   = regexp.MustCompile(`(</` + blocks + `>)`)
	reOptionBefore = regexp.MustCompile(`\s*<option`)
	reOptionAfter  = regexp.MustCompile(`</option>\s*`)
	reObjectOpen   = regexp.MustCompile(`(<object[^>]*>)\s*`)
	reObjectClose  = regexp.MustCompile(`\s*</object>`)
	reParamEmbed   = regexp.MustCompile(`\s*(</?(?:param|embed)[^>]*>)\s*`)
	reMediaOpen    = regexp.MustCompile(`([<\[](?:audio|video)[^>\]]*[>\]])\s*`)
	reMediaClose   = regexp.MustCompile(`\s*([<\[]/(?:audio|video)[>\]])`)
	reSourceTrack  = regexp.MustCompile(`\s*(<(?:source|track)[^>]*>)\s*`)
	reFigcapOpen   = regexp.MustCompile(`\s*(<figcaption[^>]*>)`)
	reFigcapClose  = regexp.MustCompile(`</figcaption>\s*`)
	reManyNewlines = regexp.MustCompile(`\n\n+`)
	reParagraphs   = regexp.MustCompile(`\n\s*\n`)

	reEmptyP          = regexp.MustCompile(`<p>\s*</p>`)
	reUnclosedP       = regexp.MustCompile(`<p>([^<]+)</(div|address|form)>`)
	reWrappedBlock    = regexp.MustCompile(`<p>\s*(</?` + blocks + `[^>]*>)\s*</p>`)
	reWrappedLi       = regexp.MustCompile(`<p>(<li.+?)</p>`)
	reWrappedQuote    = regexp.MustCompile(`(?i)<p><blockquote([^>]*)>`)
	rePBeforeBlock    = regexp.MustCompile(`<p>\s*(</?` + blocks + `[^>]*>)`)
	rePAfterBlock     = regexp.MustCompile(`(</?` + blocks + `[^>]*>)\s*</p>`)
	reBrAfterBlock    = regexp.MustCompile(`(</?` + blocks + `[^>]*>)\s*<br />`)
	reBrBeforeBlock   = regexp.MustCompile(`<br />(\s*</?(?:p|li|div|dl|dd|dt|th|pre|td|ul|ol)[^>]*>)`)
	reTrailingNewline = regexp.MustCompile(`\n</p>(\n?)\z`)
)

// Autop converts double line breaks into paragraphs and, by default,
// single line breaks into <br /> tags. Whitespace-only input yields "".
func Autop(text string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if strings.TrimSpace(text) == "" {
		return ""
	}

	s := text + "\n"

	s, preTags := extractPre(s)

	s = reDoubleBr.ReplaceAllString(s, "\n\n")
	s = reBlockOpen.ReplaceAllString(s, "\n\n$1")
	s = reBlockClose.ReplaceAllString(s, "$1\n\n")

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = htmlsplit.ReplaceInTags(s, map[string]string{"\n": paddedNewline})

	s = collapseGroups(s)

	s = reManyNewlines.ReplaceAllString(s, "\n\n")

	var b strings.Builder
	for _, part := range reParagraphs.Split(s, -1) {
		if part == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.Trim(part, "\n"))
		b.WriteString("</p>\n")
	}
	s = b.String()

	s = reEmptyP.ReplaceAllString(s, "")
	s = reUnclosedP.ReplaceAllString(s, "<p>$1</p></$2>")
	s = reWrappedBlock.ReplaceAllString(s, "$1")
	s = reWrappedLi.ReplaceAllString(s, "$1")
	s = reWrappedQuote.ReplaceAllString(s, "<blockquote$1><p>")
	s = strings.ReplaceAll(s, "</blockquote></p>", "</p></blockquote>")
	s = rePBeforeBlock.ReplaceAllString(s, "$1")
	s = rePAfterBlock.ReplaceAllString(s, "$1")

	if o.breaks {
		s = preserveRawTextNewlines(s)
		s = strings.ReplaceAll(s, "<br>", "<br />")
		s = strings.ReplaceAll(s, "<br/>", "<br />")
		s = newlinesToBreaks(s)
		s = strings.ReplaceAll(s, preservedNewline, "\n")
	}

	s = reBrAfterBlock.ReplaceAllString(s, "$1")
	s = reBrBeforeBlock.ReplaceAllString(s, "$1")
	s = reTrailingNewline.ReplaceAllString(s, "</p>$1")

	if len(preTags) > 0 {
		s = strings.NewReplacer(preTags...).Replace(s)
	}

	if strings.Contains(s, newlineMarker) {
		s = strings.ReplaceAll(s, paddedNewline, "\n")
		s = strings.ReplaceAll(s, newlineMarker, "\n")
	}

	return s
}

// extractPre swaps every <pre>...</pre> block for a numbered placeholder.
// It returns the rewritten text and old/new pairs restoring the blocks.
// A </pre> without an opening tag is dropped.
func extractPre(s string) (string, []string) {
	if !strings.Contains(s, "</pre>") {
		return s, nil
	}

	parts := strings.Split(s, "</pre>")
	last := parts[len(parts)-1]
	parts = parts[:len(parts)-1]

	var (
		b     strings.Builder
		pairs []string
		n     int
	)
	for _, part := range parts {
		start := strings.Index(part, "<pre")
		if start < 0 {
			b.WriteString(part)
			continue
		}

		name := fmt.Sprintf(preTagPlaceholder, n)
		pairs = append(pairs, name, part[start:]+"</pre>")
		n++

		b.WriteString(part[:start])
		b.WriteString(name)
	}
	b.WriteString(last)

	return b.String(), pairs
}

// collapseGroups removes whitespace around elements that must stay on one
// line with their siblings: options, object/param/embed, media sources and
// figure captions.
func collapseGroups(s string) string {
	if strings.Contains(s, "<option") {
		s = reOptionBefore.ReplaceAllString(s, "<option")
		s = reOptionAfter.ReplaceAllString(s, "</option>")
	}

	if strings.Contains(s, "</object>") {
		s = reObjectOpen.ReplaceAllString(s, "$1")
		s = reObjectClose.ReplaceAllString(s, "</object>")
		s = reParamEmbed.ReplaceAllString(s, "$1")
	}

	if strings.Contains(s, "<source") || strings.Contains(s, "<track") {
		s = reMediaOpen.ReplaceAllString(s, "$1")
		s = reMediaClose.ReplaceAllString(s, "$1")
		s = reSourceTrack.ReplaceAllString(s, "$1")
	}

	if strings.Contains(s, "<figcaption") {
		s = reFigcapOpen.ReplaceAllString(s, "$1")
		s = reFigcapClose.ReplaceAllString(s, "</figcaption>")
	}

	return s
}
