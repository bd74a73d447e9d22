// Package resolve maps a logical request path onto a concrete file in a store.
package resolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"hybrid/internal/errors"
)

// Store is the sandboxed file access the resolver and dispatcher consume.
// Exists returns false, not an error, for absent files.
type Store interface {
	Exists(name string) (bool, error)
	Open(name string) (io.ReadCloser, error)
}

// Resolver tries each candidate rewrite against a store.
type Resolver struct {
	store  Store
	rules  []Rule
	logger *slog.Logger
}

// New creates a resolver using the standard rule order.
func New(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		rules:  Rules,
		logger: logger,
	}
}

// Match is the winning rule and the file it named.
type Match struct {
	Rule Rule
	File string
}

// Resolve returns the first candidate of logicalPath that exists as a
// regular file. Exhausting the rules yields a NOT_FOUND error; any other
// store error aborts the search and is returned as is.
func (r *Resolver) Resolve(ctx context.Context, logicalPath string) (string, error) {
	m, err := r.Match(ctx, logicalPath)
	if err != nil {
		return "", err
	}
	return m.File, nil
}

// Match is Resolve but also reports which rule matched.
func (r *Resolver) Match(ctx context.Context, logicalPath string) (Match, error) {
	for _, rule := range r.rules {
		candidate := rule.Rewrite(logicalPath)
		ok, err := r.store.Exists(candidate)
		if err != nil {
			return Match{}, fmt.Errorf("resolve %q via %s: %w", logicalPath, rule.Name, err)
		}
		if ok {
			r.logger.DebugContext(ctx, "Resolved path",
				"path", logicalPath,
				"rule", rule.Name,
				"file", candidate,
			)
			return Match{Rule: rule, File: candidate}, nil
		}
	}

	return Match{}, errors.New(errors.NotFound, "no candidate matched").
		WithDetails(map[string]string{"path": logicalPath})
}
