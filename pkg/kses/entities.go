package kses

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reNamedEntity   = regexp.MustCompile(`&amp;([A-Za-z]{2,8}[0-9]{0,2});`)
	reDecimalEntity = regexp.MustCompile(`&amp;#(0*[0-9]{1,7});`)
	reHexEntity     = regexp.MustCompile(`&amp;#[Xx](0*[0-9A-Fa-f]{1,6});`)

	reDecodeDecimal = regexp.MustCompile(`&#([0-9]+);`)
	reDecodeHex     = regexp.MustCompile(`&#[Xx]([0-9A-Fa-f]+);`)

	reSlashZero = regexp.MustCompile(`\\+0+`)
)

// allowedEntityNames is the whitelist of named entities that survive
// NormalizeEntities.
var allowedEntityNames = func() map[string]struct{} {
	names := []string{
		"nbsp", "iexcl", "cent", "pound", "curren", "yen", "brvbar", "sect", "uml", "copy",
		"ordf", "laquo", "not", "shy", "reg", "macr", "deg", "plusmn", "acute", "micro",
		"para", "middot", "cedil", "ordm", "raquo", "iquest", "Agrave", "Aacute", "Acirc", "Atilde",
		"Auml", "Aring", "AElig", "Ccedil", "Egrave", "Eacute", "Ecirc", "Euml", "Igrave", "Iacute",
		"Icirc", "Iuml", "ETH", "Ntilde", "Ograve", "Oacute", "Ocirc", "Otilde", "Ouml", "times",
		"Oslash", "Ugrave", "Uacute", "Ucirc", "Uuml", "Yacute", "THORN", "szlig", "agrave", "aacute",
		"acirc", "atilde", "auml", "aring", "aelig", "ccedil", "egrave", "eacute", "ecirc", "euml",
		"igrave", "iacute", "icirc", "iuml", "eth", "ntilde", "ograve", "oacute", "ocirc", "otilde",
		"ouml", "divide", "oslash", "ugrave", "uacute", "ucirc", "uuml", "yacute", "thorn", "yuml",
		"quot", "amp", "lt", "gt", "apos", "OElig", "oelig", "Scaron", "scaron", "Yuml",
		"circ", "tilde", "ensp", "emsp", "thinsp", "zwnj", "zwj", "lrm", "rlm", "ndash",
		"mdash", "lsquo", "rsquo", "sbquo", "ldquo", "rdquo", "bdquo", "dagger", "Dagger", "permil",
		"lsaquo", "rsaquo", "euro", "fnof", "Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta",
		"Eta", "Theta", "Iota", "Kappa", "Lambda", "Mu", "Nu", "Xi", "Omicron", "Pi",
		"Rho", "Sigma", "Tau", "Upsilon", "Phi", "Chi", "Psi", "Omega", "alpha", "beta",
		"gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa", "lambda", "mu",
		"nu", "xi", "omicron", "pi", "rho", "sigmaf", "sigma", "tau", "upsilon", "phi",
		"chi", "psi", "omega", "thetasym", "upsih", "piv", "bull", "hellip", "prime", "Prime",
		"oline", "frasl", "weierp", "image", "real", "trade", "alefsym", "larr", "uarr", "rarr",
		"darr", "harr", "crarr", "lArr", "uArr", "rArr", "dArr", "hArr", "forall", "part",
		"exist", "empty", "nabla", "isin", "notin", "ni", "prod", "sum", "minus", "lowast",
		"radic", "prop", "infin", "ang", "and", "or", "cap", "cup", "int", "sim",
		"cong", "asymp", "ne", "equiv", "le", "ge", "sub", "sup", "nsub", "sube",
		"supe", "oplus", "otimes", "perp", "sdot", "lceil", "rceil", "lfloor", "rfloor", "lang",
		"rang", "loz", "spades", "clubs", "hearts", "diams", "sup1", "sup2", "sup3", "frac14",
		"frac12", "frac34", "there4",
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}()

// NormalizeEntities escapes every ampersand, then restores the entities that
// are known to be safe: whitelisted named entities and numeric or hex
// references to valid code points. Decimal references are zero-padded to
// three digits, hex references lose their leading zeros.
func NormalizeEntities(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")

	s = replaceSubmatch(reNamedEntity, s, func(name string) string {
		if _, ok := allowedEntityNames[name]; ok {
			return "&" + name + ";"
		}
		return "&amp;" + name + ";"
	})

	s = replaceSubmatch(reDecimalEntity, s, func(digits string) string {
		if digits == "0" {
			return ""
		}
		n, err := strconv.ParseUint(digits, 10, 32)
		if err != nil || !validCodePoint(n) {
			return "&amp;#" + digits + ";"
		}
		trimmed := strings.TrimLeft(digits, "0")
		if len(trimmed) < 3 {
			trimmed = strings.Repeat("0", 3-len(trimmed)) + trimmed
		}
		return "&#" + trimmed + ";"
	})

	s = replaceSubmatch(reHexEntity, s, func(hex string) string {
		if hex == "0" {
			return ""
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !validCodePoint(n) {
			return "&amp;#x" + hex + ";"
		}
		return "&#x" + strings.TrimLeft(hex, "0") + ";"
	})

	return s
}

// DecodeEntities converts decimal (&#58;) and hex (&#x3a;) character
// references into the byte they name. Values above 255 keep their low byte.
func DecodeEntities(s string) string {
	s = replaceSubmatch(reDecodeDecimal, s, func(digits string) string {
		var n int
		for i := 0; i < len(digits); i++ {
			n = (n*10 + int(digits[i]-'0')) % 256
		}
		return string([]byte{byte(n)})
	})
	s = replaceSubmatch(reDecodeHex, s, func(hex string) string {
		if len(hex) > 2 {
			hex = hex[len(hex)-2:]
		}
		n, _ := strconv.ParseUint(hex, 16, 8)
		return string([]byte{byte(n)})
	})
	return s
}

// NoNull removes ASCII control characters other than tab, newline and
// carriage return, and any backslash-zero sequence.
func NoNull(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x08 || c == 0x0B || c == 0x0C || (c >= 0x0E && c <= 0x1F) {
			continue
		}
		b = append(b, c)
	}
	return reSlashZero.ReplaceAllString(string(b), "")
}

func validCodePoint(n uint64) bool {
	return n == 0x9 || n == 0xA || n == 0xD ||
		(n >= 0x20 && n <= 0xD7FF) ||
		(n >= 0xE000 && n <= 0xFFFD) ||
		(n >= 0x10000 && n <= 0x10FFFF)
}

// replaceSubmatch replaces every match of re with fn applied to the first
// capture group.
func replaceSubmatch(re *regexp.Regexp, s string, fn func(string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		b.WriteString(fn(s[m[2]:m[3]]))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
