package kses

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headerInjection = []string{"%0d", "%0a", "%0D", "%0A"}
	reScriptFile    = regexp.MustCompile(`(?i)^[a-z0-9-]+?\.php`)
	bracketEscaper  = strings.NewReplacer("[", "%5B", "]", "%5D")
)

// EscURL cleans a URL for output. It returns "" when the input is empty, when
// nothing survives the character or header-injection filters, or when the
// scheme is not allowed.
func EscURL(rawURL string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if rawURL == "" {
		return ""
	}

	u := filterURLChars(strings.ReplaceAll(rawURL, " ", "%20"))
	if u == "" {
		return ""
	}

	if !strings.HasPrefix(asciiLower(u), "mailto:") {
		u = DeepReplace(u, headerInjection...)
		// "%0a" and friends can consume the whole URL
		if u == "" {
			return ""
		}
	}

	u = strings.ReplaceAll(u, ";//", "://")

	if needsScheme(u) {
		u = "http://" + u
	}

	if o.context == Display {
		u = NormalizeEntities(u)
		u = strings.ReplaceAll(u, "&amp;", "&#038;")
		u = strings.ReplaceAll(u, "'", "&#039;")
	}

	if strings.ContainsAny(u, "[]") {
		u = escapeBrackets(u)
	}

	if strings.HasPrefix(u, "/") {
		return u
	}

	clean := BadProtocol(u, o.protocols)
	if asciiLower(clean) != asciiLower(u) {
		return ""
	}
	return clean
}

// EscURLRaw cleans a URL for storage. Entities are not encoded.
func EscURLRaw(rawURL string, opts ...Option) string {
	return EscURL(rawURL, append(opts, WithContext(DB))...)
}

// DeepReplace removes every needle from s, repeating until a full pass
// removes nothing, so "%0%0%0DDD" loses "%0D" entirely.
func DeepReplace(s string, needles ...string) string {
	for {
		replaced := false
		for _, n := range needles {
			if n == "" || !strings.Contains(s, n) {
				continue
			}
			s = strings.ReplaceAll(s, n, "")
			replaced = true
		}
		if !replaced {
			return s
		}
	}
}

func filterURLChars(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; urlByteAllowed(c) {
			b = append(b, c)
		}
	}
	return string(b)
}

func urlByteAllowed(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c >= 0x80:
		return true
	}
	return strings.IndexByte("-~+_.?#=!&;,/:%@$|*'()[]", c) >= 0
}

func needsScheme(u string) bool {
	if strings.Contains(u, ":") {
		return false
	}
	if u == "" || strings.ContainsAny(u[:1], "/#?") {
		return false
	}
	return !reScriptFile.MatchString(u)
}

// escapeBrackets percent-encodes square brackets outside the authority, so
// an IPv6 host like [::1] keeps its brackets.
func escapeBrackets(u string) string {
	p := parseURL(u)

	var front strings.Builder
	switch {
	case p.scheme != "":
		front.WriteString(p.scheme + "://")
	case strings.HasPrefix(u, "/"):
		front.WriteString("//")
	}
	if p.hasUser {
		front.WriteString(p.user)
	}
	if p.hasPass {
		front.WriteString(":" + p.pass)
	}
	if p.hasUser || p.hasPass {
		front.WriteByte('@')
	}
	front.WriteString(p.host)
	if p.hasPort {
		front.WriteString(":" + strconv.Itoa(p.port))
	}

	endDirty := u
	if f := front.String(); f != "" {
		endDirty = strings.ReplaceAll(u, f, "")
	}
	if endDirty == "" {
		return u
	}
	return strings.ReplaceAll(u, endDirty, bracketEscaper.Replace(endDirty))
}
