package render

import "errors"

var (
	ErrUnknownFormat      = errors.New("render: unknown format")
	ErrConvert            = errors.New("render: markdown conversion failed")
	ErrInvalidFrontMatter = errors.New("render: invalid front matter")
)
