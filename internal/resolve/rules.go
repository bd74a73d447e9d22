package resolve

import "unicode/utf8"

// Separator joins virtual path segments regardless of the host OS.
const Separator = "/"

// IndexFile is appended by the directory-style rules.
const IndexFile = "index.html"

// Rule is a named textual rewrite of a logical path.
type Rule struct {
	Name    string
	Rewrite func(path string) string
}

// Rules is the candidate order. The first rewrite that names an existing
// regular file wins, so exact and directory-style matches beat .html inference.
var Rules = []Rule{
	{"identity", func(p string) string { return p }},
	{"trailing-separator", func(p string) string { return p + Separator }},
	{"drop-last", dropLast},
	{"append-index", func(p string) string { return p + IndexFile }},
	{"drop-last-index", func(p string) string { return dropLast(p) + Separator + IndexFile }},
	{"separator-index", func(p string) string { return p + Separator + IndexFile }},
	{"append-html", func(p string) string { return p + ".html" }},
	{"drop-last-html", func(p string) string { return dropLast(p) + ".html" }},
}

// Candidates returns the rewrites of path in rule order.
func Candidates(path string) []string {
	out := make([]string, len(Rules))
	for i, r := range Rules {
		out[i] = r.Rewrite(path)
	}
	return out
}

// dropLast removes the final rune; an empty path is returned unchanged.
func dropLast(p string) string {
	if p == "" {
		return p
	}
	_, size := utf8.DecodeLastRuneInString(p)
	return p[:len(p)-size]
}
