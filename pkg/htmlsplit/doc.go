// Package htmlsplit splits HTML into alternating text and tag tokens.
//
// The split is lexical and lossless: joining the returned slice reproduces
// the input byte for byte. Even indices hold text, odd indices hold tag-like
// constructs (elements, comments and CDATA sections). Unterminated constructs
// extend to the end of the input instead of producing an error.
//
//	parts := htmlsplit.Split("Hello <b>world</b>")
//	// []string{"Hello ", "<b>", "world", "</b>", ""}
//
// ReplaceInTags performs substring replacement inside tag tokens only, which
// is how autop protects newlines embedded in attribute values:
//
//	out := htmlsplit.ReplaceInTags(s, map[string]string{"\n": " <!-- wpnl --> "})
package htmlsplit
