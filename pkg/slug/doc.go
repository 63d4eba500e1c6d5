// Package slug builds URL-safe slugs from titles and resolves collisions
// against a persistence layer.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/blogkit/pkg/slug"
//
//	s := slug.Make("Hello, World!")
//	// Output: "hello-world"
//
//	s = slug.Make("Über Größe straße", slug.WithLocale("de_DE"))
//	// Output: "ueber-groesse-strasse"
//
// Slugs only contain lower-case ASCII letters, digits, "_" and "-". Accented
// characters are transliterated with the translit package; dashes, slashes
// and dots become hyphens; quotes, symbols and HTML entities are dropped.
// Titles with no Latin content fall back to a Unicode transliteration, so
// "Привет мир" still yields "privet-mir".
//
// # Configuration Options
//
// WithLocale selects locale specific transliteration rules:
//
//	slug.Make("Ærø", slug.WithLocale("da_DK"))
//	// Output: "aeroe"
//
// MaxLength caps the slug length, cutting at a hyphen when possible:
//
//	slug.Make("This is a very long title", slug.MaxLength(12))
//	// Output: "this-is-a"
//
// MaxAttempts bounds the uniqueness loop (default 100).
//
// # Uniqueness
//
// Unique asks an Exister whether each candidate is taken and appends -1,
// -2, ... until a free slug is found:
//
//	s, err := slug.Unique(ctx, "Foo", slug.ExistsFunc(repo.ArticleSlugExists))
//	// "foo", or "foo-1", "foo-2", ... if taken
//
// Checking before inserting races with concurrent writers. Reserve instead
// hands each candidate to a Claimer that inserts it under a unique
// constraint and returns ErrTaken when another writer got there first:
//
//	s, err := slug.Reserve(ctx, "Foo", slug.ClaimFunc(func(ctx context.Context, s string) error {
//	    return repo.InsertWithSlug(ctx, s)
//	}))
//
// Both return ErrExhausted when every attempt is taken.
package slug
