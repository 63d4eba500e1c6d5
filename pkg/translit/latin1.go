package translit

import "strings"

// latin1 maps Windows-1252/ISO-8859-1 bytes to ASCII.
var latin1 = func() [256]string {
	var t [256]string

	in := "\x80\x83\x8a\x8e\x9a\x9e\x9f\xa2\xa5\xb5\xc0\xc1\xc2\xc3\xc4\xc5\xc7\xc8\xc9\xca\xcb" +
		"\xcc\xcd\xce\xcf\xd1\xd2\xd3\xd4\xd5\xd6\xd8\xd9\xda\xdb\xdc\xdd\xe0\xe1\xe2\xe3\xe4" +
		"\xe5\xe7\xe8\xe9\xea\xeb\xec\xed\xee\xef\xf1\xf2\xf3\xf4\xf5\xf6\xf8\xf9\xfa\xfb\xfc\xfd\xff"
	out := "EfSZszYcYuAAAAAACEEEEIIIINOOOOOOUUUUYaaaaaaceeeeiiiinoooooouuuuyy"
	for i := 0; i < len(in); i++ {
		t[in[i]] = out[i : i+1]
	}

	for c, rep := range map[byte]string{
		0x8c: "OE", 0x9c: "oe",
		0xc6: "AE", 0xe6: "ae",
		0xd0: "DH", 0xf0: "dh",
		0xde: "TH", 0xfe: "th",
		0xdf: "ss",
	} {
		t[c] = rep
	}
	return t
}()

func latin1ToASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if rep := latin1[s[i]]; rep != "" {
			b.WriteString(rep)
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
