package kses

import (
	"regexp"
	"strings"
)

const (
	maxProtocolPasses = 6
	maxFeedDepth      = 2
)

var reSchemeSep = regexp.MustCompile(`(?i):|&#0*58;|&#x0*3a;`)

// BadProtocol removes every scheme that is not in protocols. Schemes may be
// hidden behind entity-encoded colons, whitespace or control characters;
// those are normalized before the comparison. The check is repeated until
// the string stops changing, and "" is returned when it does not settle
// within a few passes.
func BadProtocol(s string, protocols []string) string {
	s = NoNull(s)

	for passes := 1; ; passes++ {
		prev := s
		s = badProtocolOnce(s, protocols, 1)
		if s == prev {
			return s
		}
		if passes >= maxProtocolPasses {
			return ""
		}
	}
}

func badProtocolOnce(s string, protocols []string, depth int) string {
	parts := reSchemeSep.Split(s, 2)
	if len(parts) < 2 || strings.Contains(parts[0], "/?") {
		return s
	}

	rest := trimSpaceNull(parts[1])
	scheme := allowedScheme(parts[0], protocols)

	// feed: wraps another URL, so the inner scheme is checked too.
	if scheme == "feed:" {
		if depth > maxFeedDepth {
			return ""
		}
		rest = badProtocolOnce(rest, protocols, depth+1)
		if rest == "" {
			return ""
		}
	}

	return scheme + rest
}

// allowedScheme returns the normalized scheme followed by a colon, or "" if
// the scheme is not allowed.
func allowedScheme(candidate string, protocols []string) string {
	candidate = DecodeEntities(candidate)
	candidate = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			return -1
		}
		return r
	}, candidate)
	candidate = asciiLower(NoNull(candidate))

	for _, p := range protocols {
		if asciiLower(p) == candidate {
			return candidate + ":"
		}
	}
	return ""
}

func trimSpaceNull(s string) string {
	return strings.Trim(s, " \t\n\r\x00\x0B")
}

func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
