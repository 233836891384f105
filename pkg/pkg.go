// Package pkg holds the identity of the kata module: its name, version and
// the per-user directories derived from the executable name.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command and module identifier. It appears in help text
	// and in the default config and cache paths.
	Name = "kata"

	// Description is a one-line summary used in help output.
	Description = "Render text templates from structured data"
)

// AuthorInfo is an author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
