// Package render turns article bodies into display HTML.
//
// Three input formats are supported. Text is escaped and paragraphized,
// HTML is reduced to an allow-list by sanitizer.FilterHTML and then
// paragraphized, and Markdown goes through goldmark (GFM) and a bluemonday
// UGC policy. Every result carries a plain text excerpt and the first link
// found in the output.
//
//	r := render.New(
//		render.WithCache(cache.NewMemory[render.Result]()),
//		render.WithExcerptLength(160),
//	)
//	res, err := r.Render(ctx, render.Document{Body: body, Format: render.FormatMarkdown})
//
// Results are cached under a SHA-256 key of the body and the options that
// affect output; identical concurrent requests render once.
//
// ParseSource reads files with a YAML front matter header, the format used
// by the import command.
package render
