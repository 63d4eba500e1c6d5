package logger

import "errors"

var (
	// ErrInvalidLevel is returned when a level name is not debug, info, warn or error.
	ErrInvalidLevel = errors.New("logger: invalid level")

	// ErrInvalidFormat is returned when a format name is not json or text.
	ErrInvalidFormat = errors.New("logger: invalid format")
)
