package cache

import "errors"

var (
	// ErrNotFound is returned when a key is missing or has expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed cache.
	ErrClosed = errors.New("cache: closed")

	// ErrEncode is returned when a value cannot be serialized.
	ErrEncode = errors.New("cache: failed to encode value")

	// ErrDecode is returned when stored bytes cannot be deserialized.
	ErrDecode = errors.New("cache: failed to decode value")
)
