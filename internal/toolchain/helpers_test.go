package toolchain

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

type fakeInspector struct {
	info  Info
	err   error
	byDir map[string]Info
	calls []string
}

func (f *fakeInspector) Inspect(_ context.Context, path string) (Info, error) {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return Info{}, f.err
	}
	if info, ok := f.byDir[filepath.Base(path)]; ok {
		return info, nil
	}
	return f.info, nil
}

type fakeCatalog struct {
	keys   []Key
	goos   string
	goarch string
}

func (f *fakeCatalog) Obtainable(goos, goarch string) ([]Key, error) {
	f.goos, f.goarch = goos, goarch
	return f.keys, nil
}

func newTestRegistry(t *testing.T, inspector Inspector) (*Registry, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "toolchains")
	return &Registry{
		Layout:    DirLayout{Root: root},
		Inspector: inspector,
		Linker:    SymlinkLinker{},
		GOOS:      "linux",
		GOARCH:    "amd64",
	}, root
}

// snapshot records every path under root with its type and contents so tests
// can assert the tree did not change.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		info, err := os.Lstat(path)
		if err != nil {
			return err
		}
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			dest, err := os.Readlink(path)
			if err != nil {
				return err
			}
			out[path] = "link:" + dest
		case info.IsDir():
			out[path] = "dir"
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			out[path] = "file:" + string(data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot %s: %v", root, err)
	}
	return out
}

func equalSnapshots(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
