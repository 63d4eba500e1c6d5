package slug

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// Exister reports whether a slug is already used in a collection.
type Exister interface {
	Exists(ctx context.Context, slug string) (bool, error)
}

// ExistsFunc adapts a function to Exister.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Exists implements Exister.
func (f ExistsFunc) Exists(ctx context.Context, slug string) (bool, error) {
	return f(ctx, slug)
}

// Claimer atomically takes a slug, typically by inserting a row under a
// unique constraint. It returns ErrTaken (possibly wrapped) when the slug
// is already used.
type Claimer interface {
	Claim(ctx context.Context, slug string) error
}

// ClaimFunc adapts a function to Claimer.
type ClaimFunc func(ctx context.Context, slug string) error

// Claim implements Claimer.
func (f ClaimFunc) Claim(ctx context.Context, slug string) error {
	return f(ctx, slug)
}

// Unique returns the first slug for title that ex reports as free, trying
// the base slug and then base-1, base-2, and so on.
func Unique(ctx context.Context, title string, ex Exister, opts ...Option) (string, error) {
	o := applyOptions(opts)

	base := Make(title, opts...)
	if base == "" {
		return "", ErrEmpty
	}

	for n := range o.maxAttempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := withSuffix(base, n, o.maxLength)
		taken, err := ex.Exists(ctx, candidate)
		if err != nil {
			return "", errors.Join(ErrLookup, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", ErrExhausted
}

// Reserve claims the first free slug for title. A candidate rejected with
// ErrTaken moves the loop to the next suffix; any other error stops it.
func Reserve(ctx context.Context, title string, cl Claimer, opts ...Option) (string, error) {
	o := applyOptions(opts)

	base := Make(title, opts...)
	if base == "" {
		return "", ErrEmpty
	}

	for n := range o.maxAttempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := withSuffix(base, n, o.maxLength)
		err := cl.Claim(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, ErrTaken) {
			return "", err
		}
	}

	return "", ErrExhausted
}

// withSuffix appends "-n" for n > 0, shortening base so the result fits
// maxLength when one is set.
func withSuffix(base string, n, maxLength int) string {
	if n == 0 {
		return base
	}

	suffix := "-" + strconv.Itoa(n)
	if maxLength > 0 && len(base)+len(suffix) > maxLength && maxLength > len(suffix) {
		base = strings.TrimRight(base[:maxLength-len(suffix)], "-")
	}
	return base + suffix
}
