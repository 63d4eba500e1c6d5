package autop

import (
	"strings"
)

const brTag = "<br />"

// preserveRawTextNewlines hides newlines inside <script> and <style>
// elements from the break conversion. The element closes with the same
// name it opened with; an unclosed element is left alone.
func preserveRawTextNewlines(s string) string {
	var b strings.Builder
	done := 0

	for pos := 0; pos < len(s); {
		start, name := nextRawTextOpen(s[pos:])
		if start < 0 {
			break
		}
		start += pos

		closing := "</" + name + ">"
		end := strings.Index(s[start+1+len(name):], closing)
		if end < 0 {
			pos = start + 1
			continue
		}
		end += start + 1 + len(name) + len(closing)

		b.WriteString(s[done:start])
		b.WriteString(strings.ReplaceAll(s[start:end], "\n", preservedNewline))
		done, pos = end, end
	}

	if done == 0 {
		return s
	}
	b.WriteString(s[done:])
	return b.String()
}

func nextRawTextOpen(s string) (int, string) {
	script := strings.Index(s, "<script")
	style := strings.Index(s, "<style")

	switch {
	case script < 0 && style < 0:
		return -1, ""
	case style < 0 || (script >= 0 && script < style):
		return script, "script"
	default:
		return style, "style"
	}
}

// newlinesToBreaks replaces each whitespace run ending in a newline with
// "<br />\n", unless the run directly follows an existing <br />. A run that
// follows a <br /> keeps its first character and converts the remainder.
func newlinesToBreaks(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)

	for i := 0; i < len(s); {
		if !isSpace(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}

		runEnd := i
		for runEnd < len(s) && isSpace(s[runEnd]) {
			runEnd++
		}
		lastNL := strings.LastIndexByte(s[i:runEnd], '\n')
		if lastNL < 0 {
			b.WriteString(s[i:runEnd])
			i = runEnd
			continue
		}
		lastNL += i

		start := i
		if strings.HasSuffix(s[:i], brTag) {
			b.WriteByte(s[i])
			start = i + 1
		}

		if start <= lastNL {
			b.WriteString(brTag)
			b.WriteByte('\n')
			b.WriteString(s[lastNL+1 : runEnd])
		} else {
			b.WriteString(s[start:runEnd])
		}
		i = runEnd
	}

	return b.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
