package render

import (
	"fmt"
	"strings"
)

// Format is the markup language of a document body.
type Format string

const (
	// FormatText is plain text: markup is escaped, then paragraphs are added.
	FormatText Format = "text"
	// FormatHTML is filtered to the allowed tags, then paragraphs are added.
	FormatHTML Format = "html"
	// FormatMarkdown is converted with goldmark and sanitized.
	FormatMarkdown Format = "markdown"
)

func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatHTML, FormatMarkdown:
		return true
	}
	return false
}

// ParseFormat accepts the format names plus "md" and "txt". Empty means text.
func ParseFormat(s string) (Format, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "txt":
		return FormatText, nil
	case "md":
		return FormatMarkdown, nil
	default:
		if f := Format(v); f.Valid() {
			return f, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}
