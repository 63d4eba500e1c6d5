package autop

import (
	"strings"

	"github.com/dmitrymomot/blogkit/pkg/sanitizer"
)

var reverseReplacer = strings.NewReplacer(
	"<br />", "\n",
	"<br/>", "\n",
	"<br>", "\n",
	"</p>", "\n\n",
)

// Reverse undoes Autop for editing: existing newlines are dropped, break
// tags become newlines, closing paragraphs become blank lines, and the
// result is passed through sanitizer.FilterHTML.
func Reverse(html string) string {
	s := strings.ReplaceAll(html, "\n", "")
	s = reverseReplacer.Replace(s)
	return sanitizer.FilterHTML(s, "")
}
