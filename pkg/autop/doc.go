// Package autop turns line-broken text into paragraph markup.
//
// Double line breaks become paragraphs and, unless disabled, single line
// breaks become <br /> tags. Block-level elements are never wrapped in a
// paragraph, <pre> contents are preserved verbatim, and newlines inside tag
// attributes survive untouched.
//
//	html := autop.Autop("Hello\n\nWorld")
//	// "<p>Hello</p>\n<p>World</p>\n"
//
//	html = autop.Autop("one\ntwo", autop.WithoutBreaks())
//	// "<p>one\ntwo</p>\n"
//
// Reverse goes the other way for editing forms: it flattens paragraph and
// break tags back into newlines and filters the markup through
// sanitizer.FilterHTML.
package autop
