package render

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of a source file.
type FrontMatter struct {
	Title      string     `yaml:"title"`
	Slug       string     `yaml:"slug"`
	Status     string     `yaml:"status"`
	Format     string     `yaml:"format"`
	Locale     string     `yaml:"locale"`
	Categories []string   `yaml:"categories"`
	Featured   bool       `yaml:"featured"`
	PublishAt  *time.Time `yaml:"publish_at"`
}

var fmDelimiter = []byte("---")

// ParseSource splits content into front matter and body. Content that does
// not start with "---" has no front matter and is returned whole.
func ParseSource(content []byte) (FrontMatter, string, error) {
	var fm FrontMatter

	if !bytes.HasPrefix(content, fmDelimiter) {
		return fm, string(content), nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, fmDelimiter), "\r\n")
	if len(rest) == 0 {
		return fm, "", fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontMatter)
	}

	end := closingDelimiter(rest)
	if end == -1 {
		return fm, "", fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontMatter)
	}

	header := rest[:end]
	body := rest[end+len(fmDelimiter):]
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}

	if len(bytes.TrimSpace(header)) > 0 {
		if err := yaml.Unmarshal(header, &fm); err != nil {
			return FrontMatter{}, "", fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
		}
	}
	return fm, string(body), nil
}

// closingDelimiter finds "---" at the start of a line.
func closingDelimiter(b []byte) int {
	for i := 0; i < len(b); {
		if bytes.HasPrefix(b[i:], fmDelimiter) {
			return i
		}
		nl := bytes.IndexByte(b[i:], '\n')
		if nl == -1 {
			return -1
		}
		i += nl + 1
	}
	return -1
}
