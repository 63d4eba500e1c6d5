package htmlsplit

import (
	"cmp"
	"slices"
	"strings"
)

// ReplaceInTags replaces occurrences of the keys of pairs with their values,
// but only inside tag tokens. Text between tags is never touched.
//
// With several pairs the replacement is a single left-to-right pass that
// prefers the longest matching key at each position, so replaced text is
// never rescanned.
func ReplaceInTags(s string, pairs map[string]string) string {
	needles := make([]string, 0, len(pairs))
	for k := range pairs {
		if k != "" {
			needles = append(needles, k)
		}
	}
	if len(needles) == 0 {
		return s
	}

	parts := Split(s)
	changed := false

	if len(needles) == 1 {
		needle, repl := needles[0], pairs[needles[0]]
		for i := 1; i < len(parts); i += 2 {
			if strings.Contains(parts[i], needle) {
				parts[i] = strings.ReplaceAll(parts[i], needle, repl)
				changed = true
			}
		}
	} else {
		r := longestFirstReplacer(needles, pairs)
		for i := 1; i < len(parts); i += 2 {
			for _, needle := range needles {
				if strings.Contains(parts[i], needle) {
					parts[i] = r.Replace(parts[i])
					changed = true
					break
				}
			}
		}
	}

	if !changed {
		return s
	}
	return strings.Join(parts, "")
}

// longestFirstReplacer builds a replacer whose argument order makes longer
// keys win over their prefixes at the same position.
func longestFirstReplacer(needles []string, pairs map[string]string) *strings.Replacer {
	slices.SortFunc(needles, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	oldnew := make([]string, 0, len(needles)*2)
	for _, n := range needles {
		oldnew = append(oldnew, n, pairs[n])
	}
	return strings.NewReplacer(oldnew...)
}
