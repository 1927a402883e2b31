package guard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"assetmgmt/scripts/check-dark-scope/log"
)

// ErrRootNotDirectory is returned when the scan root exists but is not a directory.
var ErrRootNotDirectory = errors.New("scan root is not a directory")

// DefaultExtensions are the stylesheet suffixes scanned when none are configured.
var DefaultExtensions = []string{".css"}

// DiscoverOptions controls which files Discover returns.
type DiscoverOptions struct {
	Extensions []string // stylesheet suffixes, matched case-insensitively
	Exclude    []string // doublestar globs relative to the root
}

// Discover walks root recursively and returns every stylesheet file below it,
// in lexical traversal order. Paths are joined onto root as given, even when root
// is a symlink. A missing root is not an error: there is simply nothing to check.
// Symlinked stylesheets are returned when they resolve to regular files; a dangling
// one is an error. Symlinked directories are not descended into and are logged.
func Discover(root string, opts DiscoverOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrRootNotDirectory)
	}

	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	extSet := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = true
	}

	var files []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if path == walkRoot {
			return nil
		}

		relPath, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		if isExcluded(filepath.ToSlash(relPath), opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		reported := filepath.Join(root, relPath)
		isStylesheet := extSet[strings.ToLower(filepath.Ext(d.Name()))]

		switch {
		case d.Type().IsRegular():
			if isStylesheet {
				files = append(files, reported)
			}
		case d.Type()&fs.ModeSymlink != 0:
			target, err := os.Stat(path)
			if err != nil {
				if isStylesheet {
					return fmt.Errorf("failed to resolve symlink %s: %w", reported, err)
				}
				return nil
			}
			if target.Mode().IsRegular() && isStylesheet {
				files = append(files, reported)
			} else if target.IsDir() {
				log.Warn("not following symlinked directory", "path", reported)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// isExcluded reports whether relPath matches any of the exclude globs.
// Globs are validated up front by the config layer, so match errors are treated as no match.
func isExcluded(relPath string, globs []string) bool {
	for _, glob := range globs {
		if ok, _ := doublestar.Match(glob, relPath); ok {
			return true
		}
	}
	return false
}
