package sanitizer

import "strings"

// Unslash removes one level of backslash escaping: "\x" becomes "x",
// "\\" becomes "\" and "\0" becomes a NUL byte. A trailing lone backslash
// is dropped.
func Unslash(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i == len(s) {
			break
		}
		if s[i] == '0' {
			b.WriteByte(0)
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// UnslashDeep applies Unslash to every string reachable through slices and
// maps in v. Containers are copied, never modified in place. Values of
// other types are returned unchanged.
func UnslashDeep(v any) any {
	switch val := v.(type) {
	case string:
		return Unslash(val)
	case []string:
		out := make([]string, len(val))
		for i, s := range val {
			out[i] = Unslash(s)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = UnslashDeep(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, s := range val {
			out[k] = Unslash(s)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = UnslashDeep(item)
		}
		return out
	default:
		return v
	}
}
