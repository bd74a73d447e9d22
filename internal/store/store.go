package store

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"syscall"

	"hybrid/internal/errors"
	"hybrid/internal/paths"
)

// Dir is a store rooted at an OS directory.
type Dir struct {
	root string
}

// NewDir canonicalizes root and returns a store confined to it.
func NewDir(root string) (*Dir, error) {
	canonical, err := paths.CanonicalizeRoot(root)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid, "content root is not accessible", err).
			WithDetails(map[string]string{"root": root})
	}
	if !paths.DirExists(canonical) {
		return nil, errors.New(errors.ConfigInvalid, "content root is not a directory").
			WithDetails(map[string]string{"root": root})
	}
	return &Dir{root: canonical}, nil
}

// Root returns the canonical root directory.
func (d *Dir) Root() string {
	return d.root
}

// Exists reports whether name is a regular file inside the root.
// Absent and escaping names return false with a nil error.
func (d *Dir) Exists(name string) (bool, error) {
	if strings.HasSuffix(name, "/") {
		return false, nil
	}

	full, err := d.locate(name)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	info, err := os.Stat(full)
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
func (d *Dir) Open(name string) (io.ReadCloser, error) {
	if strings.HasSuffix(name, "/") {
		return nil, notFound(name)
	}

	full, err := d.locate(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
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

// locate is the confinement chokepoint: it joins, canonicalizes and
// checks the result against the root.
func (d *Dir) locate(name string) (string, error) {
	joined, inside := paths.JoinRoot(d.root, name)
	if !inside {
		return "", notFound(name)
	}

	canonical, err := paths.Canonicalize(joined)
	if err != nil {
		return "", classify(err, name)
	}
	if !paths.IsWithin(canonical, d.root) {
		return "", notFound(name)
	}
	return canonical, nil
}

func notFound(name string) *errors.HybridError {
	return errors.New(errors.NotFound, "file not found").
		WithDetails(map[string]string{"path": name})
}

// classify maps an fs error onto the store's error codes.
func classify(err error, name string) error {
	details := map[string]string{"path": name}
	switch {
	case stderrors.Is(err, fs.ErrNotExist), stderrors.Is(err, syscall.ENOTDIR):
		return errors.Wrap(errors.NotFound, "file not found", err).WithDetails(details)
	case stderrors.Is(err, fs.ErrPermission):
		return errors.Wrap(errors.AccessDenied, "access denied", err).WithDetails(details)
	default:
		return errors.Wrap(errors.IOError, "store I/O failure", err).WithDetails(details)
	}
}
