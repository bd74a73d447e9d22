package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// CanonicalizeRoot turns a content root into an absolute path with symlinks resolved.
// The root must exist.
func CanonicalizeRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Canonicalize resolves symlinks in an absolute path.
// - Returns the os error unchanged (callers classify ENOENT/ENOTDIR)
// - The result is cleaned and absolute
func Canonicalize(absolutePath string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		return "", err
	}
	return filepath.Clean(resolved), nil
}

// IsWithin reports whether path equals root or lies below it.
// Both arguments must already be canonical.
func IsWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// JoinRoot joins a canonical root with a slash-separated virtual path.
// The second result is false when the lexical join leaves the root.
func JoinRoot(root string, virtualPath string) (string, bool) {
	// Backslashes count as separators so they cannot hide a ".." segment
	normalized := strings.ReplaceAll(virtualPath, "\\", "/")
	parts := strings.Split(normalized, "/")
	joined := filepath.Join(append([]string{root}, parts...)...)
	return joined, IsWithin(joined, root)
}

// NormalizePath converts OS separators to forward slashes
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// DirExists reports whether a directory exists at path
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
