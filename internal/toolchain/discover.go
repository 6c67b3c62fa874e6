package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Candidate is an interpreter found by Discover. Err is set when the file
// matched a pattern but did not introspect cleanly.
type Candidate struct {
	Path string
	Key  Key
	Err  error
}

// DefaultDiscoverPatterns returns the glob patterns searched when neither the
// command line nor the config names any.
func DefaultDiscoverPatterns() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:/Python3*/python.exe`,
			filepath.ToSlash(filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "Python", "Python3*", "python.exe")),
		}
	case "darwin":
		return []string{
			"/usr/local/bin/python3.*",
			"/opt/homebrew/bin/python3.*",
			"/Library/Frameworks/Python.framework/Versions/*/bin/python3",
		}
	default:
		return []string{
			"/usr/bin/python3.*",
			"/usr/local/bin/python3.*",
			"/usr/bin/pypy3*",
		}
	}
}

// Discover expands patterns, drops duplicates that resolve to the same file
// and inspects every remaining candidate.
func Discover(ctx context.Context, inspector Inspector, patterns []string) ([]Candidate, error) {
	paths, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(paths))
	for _, path := range paths {
		candidates = append(candidates, InspectCandidate(ctx, inspector, path))
	}
	return candidates, nil
}

// ExpandPatterns returns the sorted regular files matched by patterns, one
// per underlying file.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			resolved, err := filepath.EvalSymlinks(match)
			if err != nil {
				resolved = match
			}
			if seen[resolved] {
				continue
			}
			seen[resolved] = true
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// InspectCandidate inspects one path and derives its key.
func InspectCandidate(ctx context.Context, inspector Inspector, path string) Candidate {
	info, err := inspector.Inspect(ctx, path)
	if err != nil {
		return Candidate{Path: path, Err: err}
	}
	key, err := DeriveKey(info, "")
	return Candidate{Path: path, Key: key, Err: err}
}
