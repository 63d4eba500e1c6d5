// Package cli implements the blogkit command line with cobra.
package cli
