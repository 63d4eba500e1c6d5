// Package api exposes the formatting functions and the article service
// over a JSON HTTP API built on chi.
//
// Errors are returned as {"error": "...", "request_id": "..."} with a
// status derived from the underlying sentinel error.
package api
