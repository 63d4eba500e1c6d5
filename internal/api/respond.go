package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError logs server-side failures and renders err as {"error": ...}.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	he := toHTTPError(err)
	if he.Code >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", he.Err),
		)
	}
	writeJSON(w, he.Code, errorResponse{
		Error:     he.Message,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// decode reads one JSON object from the body. Unknown fields are rejected
// so typos surface as 400s.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large", err)
		}
		if errors.Is(err, io.EOF) {
			return NewHTTPError(http.StatusBadRequest, "request body is empty", errors.Join(ErrBadRequest, err))
		}
		return NewHTTPError(http.StatusBadRequest, "malformed JSON: "+err.Error(), errors.Join(ErrBadRequest, err))
	}
	return nil
}
