// Package catalog lists the toolchains that can be obtained for a platform.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"toolchainctl/internal/toolchain"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// document is the on-disk shape: name -> <GOOS>-<GOARCH> -> versions.
type document struct {
	Toolchains map[string]map[string][]string `yaml:"toolchains"`
}

// Index holds obtainable keys per platform.
type Index struct {
	platforms map[string][]toolchain.Key
}

// Builtin returns the catalog shipped with the binary.
func Builtin() (*Index, error) {
	idx := &Index{platforms: map[string][]toolchain.Key{}}
	if err := idx.merge(builtinCatalog, "builtin catalog"); err != nil {
		return nil, err
	}
	return idx, nil
}

// Load returns the builtin catalog extended with the entries of extraFile.
// An empty extraFile loads only the builtin catalog.
func Load(extraFile string) (*Index, error) {
	idx, err := Builtin()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(extraFile) == "" {
		return idx, nil
	}

	contents, err := os.ReadFile(extraFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("catalog file %s not found", extraFile)
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := idx.merge(contents, extraFile); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *Index) merge(contents []byte, source string) error {
	var doc document
	if err := yaml.Unmarshal(contents, &doc); err != nil {
		return fmt.Errorf("unmarshal %s: %w", source, err)
	}

	for name, perPlatform := range doc.Toolchains {
		for platform, versions := range perPlatform {
			platform = strings.ToLower(strings.TrimSpace(platform))
			for _, version := range versions {
				key, err := toolchain.ParseKey(name + "@" + strings.TrimSpace(version))
				if err != nil {
					return fmt.Errorf("%s: %w", source, err)
				}
				if !containsKey(idx.platforms[platform], key) {
					idx.platforms[platform] = append(idx.platforms[platform], key)
				}
			}
		}
	}
	return nil
}

func containsKey(keys []toolchain.Key, key toolchain.Key) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// Obtainable returns the keys published for goos/goarch.
func (idx *Index) Obtainable(goos, goarch string) ([]toolchain.Key, error) {
	if idx == nil {
		return nil, nil
	}
	keys := idx.platforms[platformKey(goos, goarch)]
	out := make([]toolchain.Key, len(keys))
	copy(out, keys)
	return out, nil
}

func platformKey(goos, goarch string) string {
	return strings.ToLower(goos) + "-" + strings.ToLower(goarch)
}

// Lazy defers Load until the first Obtainable call, so commands that never
// list obtainable toolchains do not depend on the catalog file.
type Lazy struct {
	File string

	once sync.Once
	idx  *Index
	err  error
}

// NewLazy returns a catalog that loads the builtin index plus file on first use.
func NewLazy(file string) *Lazy {
	return &Lazy{File: file}
}

// Obtainable loads the catalog once and returns its keys for goos/goarch.
func (l *Lazy) Obtainable(goos, goarch string) ([]toolchain.Key, error) {
	l.once.Do(func() {
		l.idx, l.err = Load(l.File)
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.idx.Obtainable(goos, goarch)
}

var (
	_ toolchain.Catalog = (*Index)(nil)
	_ toolchain.Catalog = (*Lazy)(nil)
)
