// Package search runs one keyword search against a release store and
// writes the rendered results.
package search

import (
	"context"
	"fmt"
	"io"

	"github.com/franz/tnt-search/internal/query"
	"github.com/franz/tnt-search/internal/render"
	"github.com/franz/tnt-search/internal/store"
	"github.com/franz/tnt-search/internal/util"
)

// Options is everything a search invocation needs
type Options struct {
	Keyword       string
	Mode          query.Mode
	CaseSensitive bool
	HumanReadable bool
	LinkOnly      bool
	TSV           bool
	StorePath     string
}

// DefaultOptions returns the defaults for keyword: substring,
// case-insensitive, raw sizes, full table, per-user store.
func DefaultOptions(keyword string) Options {
	return Options{
		Keyword:   keyword,
		Mode:      query.Substring,
		StorePath: util.DefaultStorePath(),
	}
}

// catalog is the part of a store a search uses
type catalog interface {
	Search(ctx context.Context, q query.Query) ([]store.Release, error)
	Close() error
}

// openCatalog opens the store read-only. Tests replace it to observe
// that every opened catalog is closed.
var openCatalog = func(ctx context.Context, path string) (catalog, error) {
	s, err := store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Result reports what a search found
type Result struct {
	Matches int
}

// Run executes the search described by opts and renders matches to w.
//
// The store is opened read-only and always closed before Run returns.
// Zero matches write nothing and return util.ErrNoResults so callers can
// tell "found nothing" apart from success.
func Run(ctx context.Context, opts Options, w io.Writer) (res *Result, err error) {
	if opts.StorePath == "" {
		return nil, fmt.Errorf("%w: store path is empty", util.ErrInvalidConfig)
	}

	q := query.Build(opts.Keyword, opts.Mode, opts.CaseSensitive)
	util.DebugLog("Searching %s for %q (mode=%s, case-sensitive=%v)", opts.StorePath, q.Keyword, q.Mode, q.CaseSensitive)

	s, err := openCatalog(ctx, opts.StorePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close store: %w", cerr)
		}
	}()

	releases, err := s.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	res = &Result{Matches: len(releases)}
	if len(releases) == 0 {
		return res, util.ErrNoResults
	}

	if err := render.Render(w, releases, render.Options{
		HumanReadable: opts.HumanReadable,
		LinkOnly:      opts.LinkOnly,
		TSV:           opts.TSV,
	}); err != nil {
		return res, fmt.Errorf("failed to write results: %w", err)
	}

	return res, nil
}
