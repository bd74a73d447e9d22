package store

import (
	"io"
	"path"
	"strings"

	"hybrid/internal/errors"

	"github.com/spf13/afero"
)

// FS is a store over an afero filesystem.
type FS struct {
	fs afero.Fs
}

// NewFS returns a store serving fsys.
func NewFS(fsys afero.Fs) *FS {
	return &FS{fs: fsys}
}

// Exists reports whether name is a regular file in the filesystem.
func (s *FS) Exists(name string) (bool, error) {
	clean, ok := confine(name)
	if !ok {
		return false, nil
	}

	info, err := s.fs.Stat(clean)
	if err != nil {
		err = classify(err, name)
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Open opens name for sequential reading.
func (s *FS) Open(name string) (io.ReadCloser, error) {
	clean, ok := confine(name)
	if !ok {
		return nil, notFound(name)
	}

	f, err := s.fs.Open(clean)
	if err != nil {
		return nil, classify(err, name)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, classify(err, name)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, notFound(name)
	}
	return f, nil
}

// confine cleans name into an unrooted relative path, refusing names
// that climb above the root or ask for a directory.
func confine(name string) (string, bool) {
	if strings.HasSuffix(name, "/") {
		return "", false
	}
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	clean = strings.TrimLeft(clean, "/")
	if clean == "" {
		clean = "."
	}
	return clean, true
}
