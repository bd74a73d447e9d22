// Package store provides read-only file access confined to a content root.
//
// Every lookup funnels through a single confinement check. A name that would
// resolve outside the root, lexically or through a symlink, is reported as
// NOT_FOUND and is never opened. Names are slash-separated virtual paths; a
// leading slash is relative to the root, and a trailing slash asks for a
// directory, so it never matches a regular file.
//
// Two implementations exist:
//   - Dir serves an OS directory. The root and every target are canonicalized
//     (symlinks resolved) before a root-prefix check.
//   - FS serves any afero.Fs, such as the embedded built-in pages or an
//     in-memory tree. It has no symlinks, so the check is lexical.
//
// Both are safe for unlimited concurrent use; nothing is mutated after
// construction.
package store
