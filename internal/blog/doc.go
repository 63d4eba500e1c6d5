// Package blog wires rendering, slug reservation and storage into the
// article workflows used by the HTTP API and the CLI.
package blog
