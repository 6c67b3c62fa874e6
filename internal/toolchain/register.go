package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidateFunc lets callers reject a derived key before anything is written.
type ValidateFunc func(Key) error

// DeriveKey builds the key for an inspected interpreter. A non-empty label
// replaces the implementation name and debug marker.
func DeriveKey(info Info, label string) (Key, error) {
	var s string
	if label != "" {
		s = label + "@" + info.Version
	} else {
		name := strings.ToLower(info.Implementation)
		if info.Debug {
			name += DebugSuffix
		}
		s = name + "@" + info.Version
	}
	return ParseKey(s)
}

// Register inspects the interpreter at path and links it into the managed
// root under its derived key. An occupied target is never replaced.
func (r *Registry) Register(ctx context.Context, path, label string, validate ValidateFunc) (Key, error) {
	info, err := r.Inspector.Inspect(ctx, path)
	if err != nil {
		return Key{}, err
	}
	r.logger().Debug("inspected interpreter", "path", path, "implementation", info.Implementation, "version", info.Version, "debug", info.Debug)

	key, err := DeriveKey(info, label)
	if err != nil {
		return Key{}, err
	}

	if validate != nil {
		if err := validate(key); err != nil {
			return Key{}, &ValidationError{Key: key, Err: err}
		}
	}

	target, err := r.Layout.CanonicalPath(key)
	if err != nil {
		return Key{}, err
	}

	if _, err := os.Lstat(target); err == nil {
		return Key{}, &ConflictError{Key: key, Path: target}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Key{}, &IOError{Op: "stat", Path: target, Err: err}
	}

	// The root normally exists already; if creating it fails the link step
	// reports the real problem.
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		r.logger().Debug("prepare toolchain root", "err", err)
	}

	linker := r.Linker
	if linker == nil {
		linker = DefaultLinker(r.logger())
	}
	if err := linker.Link(path, target); err != nil {
		var linkErr *LinkError
		if errors.As(err, &linkErr) {
			return Key{}, err
		}
		return Key{}, &LinkError{Target: target, Candidate: path, Err: err}
	}

	r.logger().Info("registered toolchain", "key", key, "path", path)
	return key, nil
}

// AllowNames returns a ValidateFunc accepting keys whose name matches one of
// the glob patterns. An empty pattern list accepts everything.
func AllowNames(patterns []string) ValidateFunc {
	if len(patterns) == 0 {
		return nil
	}
	return func(key Key) error {
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, key.Name)
			if err != nil {
				return fmt.Errorf("bad name pattern %q: %w", pattern, err)
			}
			if ok {
				return nil
			}
		}
		return fmt.Errorf("name %q is not in the allowed list", key.Name)
	}
}
