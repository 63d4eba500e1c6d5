// Package sanitizer cleans user supplied HTML.
//
// [FilterHTML] reduces markup to a small allow-list of inline tags
// (a, strong, em, ol, ul, li) and strips every attribute except title,
// target and href on anchors:
//
//	sanitizer.FilterHTML(`<b>hi</b><script>alert(1)</script>`, "")
//	// "<strong>hi</strong>"
//
// Extra tags can be allowed with a fragment such as "<p><h2>".
//
// The bluemonday based helpers cover the other common cases: [StripHTML]
// returns plain text, [SanitizeHTML] keeps basic formatting and
// [SanitizeHTMLCustom] applies a caller supplied policy.
//
// [Excerpt] and [FirstURL] derive summaries from rendered content, and
// [Unslash]/[UnslashDeep] undo backslash escaping applied upstream.
//
// Malformed markup never produces an error.
package sanitizer
