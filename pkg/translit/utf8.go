package translit

// SeemsUTF8 reports whether s is made of well-formed UTF-8 byte sequences.
// Lead bytes announce up to five continuation bytes, so the legacy five and
// six byte forms are accepted. Code point ranges are not checked.
func SeemsUTF8(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]

		var n int
		switch {
		case c < 0x80:
			n = 0
		case c&0xE0 == 0xC0:
			n = 1
		case c&0xF0 == 0xE0:
			n = 2
		case c&0xF8 == 0xF0:
			n = 3
		case c&0xFC == 0xF8:
			n = 4
		case c&0xFE == 0xFC:
			n = 5
		default:
			return false
		}

		for ; n > 0; n-- {
			i++
			if i == len(s) || s[i]&0xC0 != 0x80 {
				return false
			}
		}
	}
	return true
}
