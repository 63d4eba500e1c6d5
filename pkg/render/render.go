package render

import (
	"bytes"
	"context"
	"errors"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/dmitrymomot/blogkit/pkg/autop"
	"github.com/dmitrymomot/blogkit/pkg/cache"
	"github.com/dmitrymomot/blogkit/pkg/sanitizer"
)

// Document is a body to render.
type Document struct {
	Body   string `json:"body"`
	Format Format `json:"format"`
	// NoBreaks disables <br /> for single newlines in text and html bodies.
	NoBreaks bool `json:"no_breaks"`
}

// Result is the rendered form of a Document.
type Result struct {
	HTML     string `json:"html"`
	Excerpt  string `json:"excerpt"`
	FirstURL string `json:"first_url"`
}

// Renderer turns documents into display HTML with an excerpt. It is safe
// for concurrent use.
type Renderer struct {
	md            goldmark.Markdown
	policy        *bluemonday.Policy
	loader        *cache.Loader[Result]
	logger        *slog.Logger
	excerptLength int
	allowedTags   string
}

func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// raw HTML is kept here and cleaned by policy afterwards
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		policy:        bluemonday.UGCPolicy(),
		loader:        cache.NewLoader(o.cache, o.cacheTTL, o.logger),
		logger:        o.logger,
		excerptLength: o.excerptLength,
		allowedTags:   o.allowedTags,
	}
}

// Render converts doc. An empty format means text.
//
// When the body contains a "<!--more-->" marker, the marker is removed and
// the excerpt is taken from the text before it.
func (r *Renderer) Render(ctx context.Context, doc Document) (Result, error) {
	if doc.Format == "" {
		doc.Format = FormatText
	}
	if !doc.Format.Valid() {
		return Result{}, errors.Join(ErrUnknownFormat, errors.New(string(doc.Format)))
	}

	key := cache.Key("render",
		string(doc.Format),
		strconv.FormatBool(doc.NoBreaks),
		r.allowedTags,
		strconv.Itoa(r.excerptLength),
		doc.Body,
	)
	return r.loader.Load(ctx, key, func(ctx context.Context) (Result, error) {
		return r.render(ctx, doc)
	})
}

func (r *Renderer) render(ctx context.Context, doc Document) (Result, error) {
	start := time.Now()

	teaser, rest, hasMore := splitMore(doc.Body)
	body := doc.Body
	if hasMore {
		body = teaser + rest
	}

	out, err := r.toHTML(doc.Format, body, !doc.NoBreaks)
	if err != nil {
		return Result{}, err
	}

	excerptSrc := out
	if hasMore {
		if excerptSrc, err = r.toHTML(doc.Format, teaser, !doc.NoBreaks); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		HTML:     out,
		Excerpt:  sanitizer.Excerpt(excerptSrc, r.excerptLength),
		FirstURL: sanitizer.FirstURL(out),
	}

	r.logger.DebugContext(ctx, "document rendered",
		slog.String("format", string(doc.Format)),
		slog.Int("input_bytes", len(doc.Body)),
		slog.Int("output_bytes", len(out)),
		slog.Duration("took", time.Since(start)),
	)
	return res, nil
}

func (r *Renderer) toHTML(f Format, body string, breaks bool) (string, error) {
	switch f {
	case FormatHTML:
		return autop.Autop(sanitizer.FilterHTML(body, r.allowedTags), autop.WithBreaks(breaks)), nil
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(body), &buf); err != nil {
			return "", errors.Join(ErrConvert, err)
		}
		return sanitizer.SanitizeHTMLCustom(buf.String(), r.policy), nil
	default:
		return autop.Autop(html.EscapeString(body), autop.WithBreaks(breaks)), nil
	}
}

const moreOpen = "<!--more"

// splitMore cuts s around the first <!--more--> marker (with optional
// custom text before the closing "-->").
func splitMore(s string) (before, after string, ok bool) {
	i := strings.Index(s, moreOpen)
	if i == -1 {
		return s, "", false
	}
	j := strings.Index(s[i:], "-->")
	if j == -1 {
		return s, "", false
	}
	return s[:i], s[i+j+len("-->"):], true
}
