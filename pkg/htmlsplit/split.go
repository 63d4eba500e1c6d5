package htmlsplit

import (
	"strings"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
)

// Split returns the text and tag tokens of s. The result always has an odd
// length: it starts and ends with a (possibly empty) text token.
func Split(s string) []string {
	parts := make([]string, 0, strings.Count(s, "<")*2+1)

	textStart := 0
	for i := 0; i < len(s); {
		if s[i] != '<' {
			i++
			continue
		}

		end := tagEnd(s, i)
		parts = append(parts, s[textStart:i], s[i:end])
		textStart = end
		i = end
	}

	return append(parts, s[textStart:])
}

// tagEnd returns the index just past the tag-like construct starting at s[start].
func tagEnd(s string, start int) int {
	rest := s[start:]

	switch {
	case strings.HasPrefix(rest, commentOpen):
		// The closing marker may share dashes with the opening one, as in "<!-->".
		if idx := strings.Index(s[start+2:], commentClose); idx >= 0 {
			return start + 2 + idx + len(commentClose)
		}
		return len(s)
	case strings.HasPrefix(rest, cdataOpen):
		if idx := strings.Index(s[start+len(cdataOpen):], cdataClose); idx >= 0 {
			return start + len(cdataOpen) + idx + len(cdataClose)
		}
		return len(s)
	}

	if idx := strings.IndexByte(rest, '>'); idx >= 0 {
		return start + idx + 1
	}
	return len(s)
}

// IsTag reports whether the token at index i of a Split result is a tag token.
func IsTag(i int) bool {
	return i%2 == 1
}
