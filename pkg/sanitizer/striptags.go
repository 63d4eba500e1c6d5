package sanitizer

import (
	"regexp"
	"strings"
)

var reAllowedTag = regexp.MustCompile(`<\s*/?\s*([a-zA-Z0-9]+)`)

// rawTextElements lose their content, not just their tags, when stripped.
var rawTextElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"iframe":   {},
	"noscript": {},
	"template": {},
}

// StripTags removes every tag whose name is not listed in allowed, a
// fragment like "<a><strong>". Allowed tags are kept verbatim. Comments
// are removed, an unterminated tag or comment swallows the rest of the
// input, and a "<" followed by whitespace is kept as text.
func StripTags(s, allowed string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	allow := allowedTagSet(allowed)

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c != '<' || i+1 == len(s) || isSpace(s[i+1]) {
			b.WriteByte(c)
			i++
			continue
		}

		if strings.HasPrefix(s[i:], "<!--") {
			end := strings.Index(s[i+4:], "-->")
			if end < 0 {
				break
			}
			i += 4 + end + 3
			continue
		}

		end := tagEnd(s, i)
		if end < 0 {
			break
		}

		tag := s[i:end]
		name, closing := tagName(tag)
		if _, ok := allow[name]; ok {
			b.WriteString(tag)
			i = end
			continue
		}

		if _, raw := rawTextElements[name]; raw && !closing {
			next := skipRawText(s, end, name)
			if next < 0 {
				break
			}
			i = next
			continue
		}

		i = end
	}

	return b.String()
}

func allowedTagSet(allowed string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, m := range reAllowedTag.FindAllStringSubmatch(allowed, -1) {
		set[strings.ToLower(m[1])] = struct{}{}
	}
	return set
}

// tagEnd returns the index just past the ">" closing the tag that starts at
// i, ignoring ">" inside quoted attribute values, or -1.
func tagEnd(s string, i int) int {
	var quote byte
	for j := i + 1; j < len(s); j++ {
		c := s[j]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return j + 1
		}
	}
	return -1
}

// tagName returns the lower-cased element name of tag and whether it is a
// closing tag. Declarations and processing instructions have no name.
func tagName(tag string) (string, bool) {
	j := 1
	closing := false
	if j < len(tag) && tag[j] == '/' {
		closing = true
		j++
	}

	start := j
	for j < len(tag) && isAlnum(tag[j]) {
		j++
	}
	return strings.ToLower(tag[start:j]), closing
}

// skipRawText returns the index just past the closing tag of the raw text
// element name whose content starts at from, or -1 if it is never closed.
func skipRawText(s string, from int, name string) int {
	closing := "</" + name
	for j := from; j+len(closing) <= len(s); j++ {
		if s[j] != '<' || !strings.EqualFold(s[j:j+len(closing)], closing) {
			continue
		}
		if k := strings.IndexByte(s[j:], '>'); k >= 0 {
			return j + k + 1
		}
		return -1
	}
	return -1
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
