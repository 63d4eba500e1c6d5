package slug

import "errors"

// Sentinel errors for uniqueness resolution.
var (
	// ErrEmpty is returned when a title produces an empty slug.
	ErrEmpty = errors.New("slug: title produces an empty slug")

	// ErrExhausted is returned when every candidate up to the attempt limit is taken.
	ErrExhausted = errors.New("slug: no free slug within the attempt limit")

	// ErrTaken is returned by a Claimer when the candidate is already used.
	ErrTaken = errors.New("slug: already taken")

	// ErrLookup is returned when the Exister fails.
	ErrLookup = errors.New("slug: existence check failed")
)
