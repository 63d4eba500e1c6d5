package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/blogkit/internal/blog"
	"github.com/dmitrymomot/blogkit/pkg/render"
	"github.com/dmitrymomot/blogkit/pkg/slug"
	"github.com/dmitrymomot/blogkit/pkg/store"
)

var (
	ErrBadRequest = errors.New("api: malformed request body")
	ErrNotFound   = errors.New("api: route not found")
)

// HTTPError carries a status code and a client-facing message. Err is
// logged, never sent.
type HTTPError struct {
	Err     error
	Message string
	Code    int
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

func NewHTTPError(code int, message string, err error) *HTTPError {
	return &HTTPError{Code: code, Message: message, Err: err}
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// toHTTPError maps domain errors onto status codes. Anything unknown is a
// 500 with a generic message.
func toHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, blog.ErrInvalidInput),
		errors.Is(err, render.ErrUnknownFormat),
		errors.Is(err, render.ErrInvalidFrontMatter),
		errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, slug.ErrEmpty):
		return NewHTTPError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, blog.ErrUnknownCategory):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, store.ErrNotFound), errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found", err)
	case errors.Is(err, slug.ErrExhausted), errors.Is(err, store.ErrDuplicateSlug):
		return NewHTTPError(http.StatusConflict, err.Error(), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), err)
	}
}
