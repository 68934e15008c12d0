package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/mfm"
)

// Glob returns the files under dir matching pattern, sorted. Patterns
// support ** for recursive matching.
func Glob(dir, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required: %w", mfm.ErrValidation)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, mfm.ErrValidation)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", dir, mfm.ErrValidation)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(dir), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(dir, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Expand resolves command line arguments to source paths. Arguments with
// glob metacharacters are expanded and must match at least one file; other
// arguments are returned as given.
func Expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		base, pattern := doublestar.SplitPattern(filepath.ToSlash(arg))
		matches, err := Glob(filepath.FromSlash(base), pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
