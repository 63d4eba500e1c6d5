// Package translit converts accented Latin characters to plain ASCII.
//
//	translit.RemoveAccents("café", "en")       // "cafe"
//	translit.RemoveAccents("Müller", "de_DE")  // "Mueller"
//
// The locale selects an overlay that changes a handful of mappings:
// German writes umlauts as digraphs, Danish does the same for æ, ø and å,
// Catalan joins the flown-dot ligature and Serbian/Bosnian spell đ as dj.
// Locale identifiers may use POSIX ("de_DE.UTF-8") or BCP 47 ("de-DE")
// form; only the base language is significant.
//
// Input that is not valid UTF-8 (see [SeemsUTF8]) is treated as a single
// byte Latin-1 encoding and mapped byte by byte.
package translit
