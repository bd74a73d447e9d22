// Package pages carries the built-in pages served when no content
// directory is configured.
package pages

import (
	"embed"
	"io/fs"

	"github.com/spf13/afero"
)

//go:embed all:content
var contentFS embed.FS

// NotFound is the store path of the built-in not-found page.
const NotFound = "404.html"

// FS returns the built-in pages as a read-only filesystem rooted at the
// content directory.
func FS() afero.Fs {
	sub, err := fs.Sub(contentFS, "content")
	if err != nil {
		// Unreachable: the directory is embedded at build time
		panic(err)
	}
	return afero.NewReadOnlyFs(afero.FromIOFS{FS: sub})
}
