package kses

var defaultProtocols = []string{
	"http", "https", "ftp", "ftps", "mailto", "news", "irc", "gopher", "nntp", "feed",
	"telnet", "mms", "rtsp", "svn", "tel", "fax", "xmpp", "webcal", "urn",
}

// AllowedProtocols returns the default protocol allow-list.
// The returned slice is a copy and may be modified.
func AllowedProtocols() []string {
	out := make([]string, len(defaultProtocols))
	copy(out, defaultProtocols)
	return out
}
