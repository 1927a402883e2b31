// Package guard detects unscoped global dark-mode selectors in stylesheets.
//
// The guard walks a stylesheet tree, looks for forbidden literal selector
// substrings such as "body.dark-mode", and reports every file that contains one.
// Dark-mode rules are expected to be scoped under the application root instead.
package guard

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"assetmgmt/scripts/check-dark-scope/log"
)

// Options configures a guard run.
type Options struct {
	Root       string
	Patterns   []string
	Extensions []string
	Exclude    []string
	Workers    int // concurrent file scans; values below 1 mean sequential
}

// Run discovers the stylesheets under opts.Root, scans each one, and returns the violations
// in discovery order. A file that can't be read aborts the run with a *ScanError.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(opts.Root, DiscoverOptions{
		Extensions: opts.Extensions,
		Exclude:    opts.Exclude,
	})
	if err != nil {
		return nil, err
	}
	logger := log.With("root", opts.Root)
	logger.Debug("discovered stylesheets", "count", len(files))
	if opts.Workers > 1 && opts.Workers > len(files) {
		logger.Warn("more workers than stylesheets", "workers", opts.Workers, "files", len(files))
	}

	matches := make([][]string, len(files))
	if err := scanFiles(ctx, files, opts.Patterns, opts.Workers, matches); err != nil {
		return nil, err
	}

	result := &Result{
		Root:         opts.Root,
		FilesScanned: len(files),
		Violations:   []Violation{},
	}
	for i, found := range matches {
		if len(found) > 0 {
			result.Violations = append(result.Violations, Violation{File: files[i], Patterns: found})
		}
	}
	return result, nil
}

// scanFiles fills matches[i] with the patterns found in files[i].
// Writes are index-addressed, so the outcome doesn't depend on scheduling.
func scanFiles(ctx context.Context, files, patterns []string, workers int, matches [][]string) error {
	if workers < 1 {
		workers = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			found, err := scanFile(path, patterns)
			if err != nil {
				return err
			}
			matches[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func scanFile(path string, patterns []string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScanError{File: path, Err: err}
	}
	found := ScanContent(content, patterns)
	if len(found) > 0 {
		log.Debug("forbidden selectors found", "file", path, "patterns", found)
	}
	return found, nil
}

// String renders the options for debug logging.
func (o Options) String() string {
	return fmt.Sprintf("root=%s patterns=%v extensions=%v exclude=%v workers=%d",
		o.Root, o.Patterns, o.Extensions, o.Exclude, o.Workers)
}
