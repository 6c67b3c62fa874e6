package toolchain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Layout maps keys onto the managed directory and enumerates what is there.
type Layout interface {
	CanonicalPath(key Key) (string, error)
	Installed() (map[Key]string, error)
}

// DirLayout stores every toolchain directly under Root as <Root>/<key>.
type DirLayout struct {
	Root string
}

func (l DirLayout) CanonicalPath(key Key) (string, error) {
	if l.Root == "" {
		return "", errors.New("toolchain root not configured")
	}
	return filepath.Join(l.Root, key.String()), nil
}

// Installed returns every entry of Root whose name parses as a key, mapped to
// its interpreter binary. Entries that cannot be resolved map to their
// canonical path.
func (l DirLayout) Installed() (map[Key]string, error) {
	installed := map[Key]string{}
	if l.Root == "" {
		return installed, nil
	}

	entries, err := os.ReadDir(l.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return installed, nil
		}
		return nil, fmt.Errorf("read toolchain root: %w", err)
	}

	for _, entry := range entries {
		key, err := ParseKey(entry.Name())
		if err != nil {
			continue
		}
		target := filepath.Join(l.Root, entry.Name())
		if bin, err := ResolveInterpreter(target); err == nil {
			installed[key] = bin
		} else {
			installed[key] = target
		}
	}
	return installed, nil
}

var _ Layout = DirLayout{}
