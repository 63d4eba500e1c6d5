// Package kses cleans URLs and HTML entities for safe output.
//
// [EscURL] is the main entry point. It drops characters that cannot appear
// in a URL, hardens against header injection, adds a missing http:// scheme
// and rejects any URL whose scheme is not on the protocol allow-list:
//
//	kses.EscURL("example.com/path")     // "http://example.com/path"
//	kses.EscURL("javascript:alert(1)")  // ""
//
// An empty result means the URL was rejected. In the default display context
// ampersands and single quotes are entity-encoded for HTML output; use
// [EscURLRaw] for values headed to storage or redirects.
//
// The lower level helpers are exported for callers that validate attribute
// values directly:
//
//   - [BadProtocol] strips schemes that are not allowed
//   - [NormalizeEntities] disarms every entity outside a safe whitelist
//   - [DecodeEntities] decodes numeric and hex character references
//   - [NoNull] removes control characters and backslash-zero sequences
//   - [DeepReplace] removes needles until none remain
//
// All functions are pure and safe for concurrent use.
package kses
