package toolchain

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
)

// Logger is the subset of a leveled logger the registry writes to.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(any, ...any) {}
func (noopLogger) Info(any, ...any)  {}

// Catalog lists toolchains that can be obtained for a platform.
type Catalog interface {
	Obtainable(goos, goarch string) ([]Key, error)
}

// Registry ties the layout, catalog, inspector and linker together.
type Registry struct {
	Layout    Layout
	Catalog   Catalog
	Inspector Inspector
	Linker    Linker
	Logger    Logger
	GOOS      string
	GOARCH    string
}

// NewRegistry builds a registry rooted at root with the platform linker and
// a subprocess inspector. catalog may be nil.
func NewRegistry(root string, catalog Catalog, logger Logger) *Registry {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Registry{
		Layout:    DirLayout{Root: root},
		Catalog:   catalog,
		Inspector: NewExecInspector(nil),
		Linker:    DefaultLinker(logger),
		Logger:    logger,
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
	}
}

func (r *Registry) logger() Logger {
	if r == nil || r.Logger == nil {
		return noopLogger{}
	}
	return r.Logger
}

// Entry is one line of a listing. Path is empty for obtainable toolchains.
type Entry struct {
	Key  Key
	Path string
}

// Installed reports whether the entry exists locally.
func (e Entry) Installed() bool {
	return e.Path != ""
}

// List returns installed toolchains and, when includeObtainable is set, the
// catalog entries that are not installed. Installed entries come first; each
// group is in key order.
func (r *Registry) List(includeObtainable bool) ([]Entry, error) {
	installed, err := r.Layout.Installed()
	if err != nil {
		return nil, err
	}

	merged := make(map[Key]string, len(installed))
	for key, path := range installed {
		merged[key] = path
	}

	if includeObtainable && r.Catalog != nil {
		obtainable, err := r.Catalog.Obtainable(r.goos(), r.goarch())
		if err != nil {
			return nil, fmt.Errorf("list obtainable toolchains: %w", err)
		}
		for _, key := range obtainable {
			if _, ok := merged[key]; !ok {
				merged[key] = ""
			}
		}
	}

	entries := make([]Entry, 0, len(merged))
	for key, path := range merged {
		entries = append(entries, Entry{Key: key, Path: path})
	}
	slices.SortFunc(entries, compareEntries)
	return entries, nil
}

func compareEntries(a, b Entry) int {
	if a.Installed() != b.Installed() {
		if a.Installed() {
			return -1
		}
		return 1
	}
	return CompareKeys(a.Key, b.Key)
}

func (r *Registry) goos() string {
	if r.GOOS != "" {
		return r.GOOS
	}
	return runtime.GOOS
}

func (r *Registry) goarch() string {
	if r.GOARCH != "" {
		return r.GOARCH
	}
	return runtime.GOARCH
}

// RemoveOutcome describes what Remove found at the canonical path.
type RemoveOutcome int

const (
	NotInstalled RemoveOutcome = iota
	RemovedLink
	RemovedInstallation
)

func (o RemoveOutcome) String() string {
	switch o {
	case RemovedLink:
		return "removed-link"
	case RemovedInstallation:
		return "removed-installation"
	default:
		return "not-installed"
	}
}

// Remove deletes the toolchain stored for key. A missing toolchain is
// reported as NotInstalled, never as an error.
func (r *Registry) Remove(key Key) (RemoveOutcome, error) {
	path, err := r.Layout.CanonicalPath(key)
	if err != nil {
		return NotInstalled, err
	}

	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NotInstalled, nil
		}
		return NotInstalled, &IOError{Op: "stat", Path: path, Err: err}
	}

	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return NotInstalled, &IOError{Op: "remove installation", Path: path, Err: err}
		}
		r.logger().Debug("removed toolchain directory", "key", key, "path", path)
		return RemovedInstallation, nil
	}

	if err := os.Remove(path); err != nil {
		return NotInstalled, &IOError{Op: "remove link", Path: path, Err: err}
	}
	r.logger().Debug("removed toolchain link", "key", key, "path", path)
	return RemovedLink, nil
}

// Interpreter returns the interpreter binary for an installed key.
func (r *Registry) Interpreter(key Key) (string, error) {
	path, err := r.Layout.CanonicalPath(key)
	if err != nil {
		return "", err
	}
	bin, err := ResolveInterpreter(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("toolchain %s is not installed", key)
		}
		return "", fmt.Errorf("resolve %s: %w", key, err)
	}
	return bin, nil
}
