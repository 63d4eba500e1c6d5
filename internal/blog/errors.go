package blog

import "errors"

var (
	ErrInvalidInput    = errors.New("blog: invalid input")
	ErrUnknownCategory = errors.New("blog: unknown category")
)
