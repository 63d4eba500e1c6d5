package store

import "errors"

var (
	ErrNotFound      = errors.New("store: not found")
	ErrDuplicateSlug = errors.New("store: slug already taken")
	ErrInvalidStatus = errors.New("store: invalid article status")
	ErrUnknownDriver = errors.New("store: unknown driver")
	ErrQuery         = errors.New("store: query failed")
	ErrMigrate       = errors.New("store: migration failed")
)
