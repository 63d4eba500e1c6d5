package kses

import (
	"strconv"
	"strings"
)

// urlParts holds the components escapeBrackets needs to rebuild the front
// of a URL.
type urlParts struct {
	scheme  string
	user    string
	pass    string
	host    string
	port    int
	hasUser bool
	hasPass bool
	hasPort bool
}

// parseURL splits the scheme and authority off a URL. Scheme-relative
// ("//host/path") and root-relative ("/path") inputs yield no scheme, and
// root-relative inputs yield no host. Unparseable input yields zero parts.
func parseURL(u string) urlParts {
	var p urlParts

	rest := u
	if !strings.HasPrefix(rest, "/") {
		if i := strings.IndexByte(rest, ':'); i > 0 && validScheme(rest[:i]) {
			p.scheme, rest = rest[:i], rest[i+1:]
		}
	}

	if !strings.HasPrefix(rest, "//") {
		return p
	}
	rest = rest[2:]

	authority := rest
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		authority = rest[:i]
	}

	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		userinfo := authority[:i]
		authority = authority[i+1:]
		p.hasUser = true
		p.user = userinfo
		if j := strings.IndexByte(userinfo, ':'); j >= 0 {
			p.user, p.pass, p.hasPass = userinfo[:j], userinfo[j+1:], true
		}
	}

	host, port := authority, ""
	if strings.HasPrefix(authority, "[") {
		if i := strings.IndexByte(authority, ']'); i >= 0 {
			host = authority[:i+1]
			if tail := authority[i+1:]; strings.HasPrefix(tail, ":") {
				port = tail[1:]
			}
		}
	} else if i := strings.LastIndexByte(authority, ':'); i >= 0 {
		host, port = authority[:i], authority[i+1:]
	}
	p.host = host

	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 0 || n > 65535 {
			return urlParts{}
		}
		p.port, p.hasPort = n, true
	}

	return p
}

func validScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}
