package toolchain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// interpreterCandidates are tried, in order, inside a full installation.
var interpreterCandidates = []string{
	filepath.Join("install", "bin", "python3"),
	filepath.Join("install", "python.exe"),
	filepath.Join("bin", "python3"),
	filepath.Join("bin", "python"),
	"python.exe",
}

// ResolveInterpreter returns the interpreter binary a canonical target
// stands for. A symlink is returned as is, a regular file is a shim whose
// content is the interpreter path, and a directory is a full installation.
func ResolveInterpreter(target string) (string, error) {
	info, err := os.Lstat(target)
	if err != nil {
		return "", err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return target, nil
	case info.Mode().IsRegular():
		contents, err := os.ReadFile(target)
		if err != nil {
			return "", fmt.Errorf("read shim: %w", err)
		}
		path := strings.TrimSpace(string(contents))
		if path == "" {
			return "", fmt.Errorf("shim %s is empty", target)
		}
		return path, nil
	case info.IsDir():
		for _, rel := range interpreterCandidates {
			candidate := filepath.Join(target, rel)
			if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("no interpreter found in %s", target)
	default:
		return "", errors.New("unsupported file type at " + target)
	}
}
