// Package search locates widget files under a component-library root using
// doublestar glob patterns.
package search

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoMatch is returned by FindPropsFile when no file matches.
var ErrNoMatch = errors.New("no matching file")

// Options filters a discovery walk. Patterns are matched against paths
// relative to the root, with forward slashes.
type Options struct {
	Include []string
	Exclude []string
}

// DefaultExcludes are skipped by every discovery walk unless overridden.
var DefaultExcludes = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/coverage/**",
}

// DefaultPropsPatterns match compiled widget props files.
var DefaultPropsPatterns = []string{
	"**/*.props.js",
	"**/*.props.ts",
}

// Search returns every file under rootDir matching pattern, sorted.
// A pattern without a slash matches base names at any depth, so
// "button.props.js" finds the file wherever it lives.
func Search(pattern, rootDir string) ([]string, error) {
	if !strings.Contains(pattern, "/") {
		pattern = "**/" + pattern
	}
	return Discover(rootDir, Options{Include: []string{pattern}, Exclude: DefaultExcludes})
}

// Discover walks rootDir applying include/exclude globs from opts.
// Returns a sorted slice of absolute file paths for deterministic output.
func Discover(rootDir string, opts Options) ([]string, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range opts.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if relPath != "." && matchAny(opts.Exclude, relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if len(opts.Include) > 0 && !matchAny(opts.Include, relPath) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", rootDir, err)
	}

	sort.Strings(files)
	return files, nil
}

// FindPropsFile locates the props file of widgetName under rootDir. Names
// are tried as given and with a "wm" prefix removed ("WmButton" finds
// "button.props.js"). When several files match, the shallowest wins.
func FindPropsFile(rootDir, widgetName string) (string, error) {
	if widgetName == "" || strings.ContainsAny(widgetName, `*?[]{}\/`) {
		return "", fmt.Errorf("invalid widget name %q", widgetName)
	}

	var candidates []string
	for _, name := range nameVariants(widgetName) {
		for _, pattern := range DefaultPropsPatterns {
			matches, err := Search(strings.Replace(path.Base(pattern), "*", name, 1), rootDir)
			if err != nil {
				return "", err
			}
			candidates = append(candidates, matches...)
		}
		if len(candidates) > 0 {
			break
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: widget %q under %s", ErrNoMatch, widgetName, rootDir)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return depth(candidates[i]) < depth(candidates[j])
	})
	return candidates[0], nil
}

func nameVariants(widgetName string) []string {
	lower := strings.ToLower(strings.TrimSpace(widgetName))
	variants := []string{lower}
	if trimmed := strings.TrimPrefix(lower, "wm"); trimmed != lower && trimmed != "" {
		variants = append(variants, strings.TrimLeft(trimmed, "-_"))
	}
	return variants
}

func matchAny(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		if m, _ := doublestar.Match(pattern, relPath); m {
			return true
		}
	}
	return false
}

func depth(p string) int {
	return strings.Count(filepath.ToSlash(p), "/")
}
