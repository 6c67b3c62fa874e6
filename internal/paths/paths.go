package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// HomeEnv overrides the data directory when set.
const HomeEnv = "TOOLCHAINCTL_HOME"

// AppPaths captures canonical locations used by toolchainctl.
type AppPaths struct {
	Home         string
	ToolchainDir string
}

// Resolve determines the data directory. Precedence: the --root flag, the
// TOOLCHAINCTL_HOME environment variable, the config value, then the per-OS
// default.
func Resolve(rootFlag, configRoot string) (AppPaths, error) {
	var (
		home string
		err  error
	)

	switch {
	case rootFlag != "":
		home, err = filepath.Abs(rootFlag)
	case os.Getenv(HomeEnv) != "":
		home, err = filepath.Abs(os.Getenv(HomeEnv))
	case configRoot != "":
		home, err = filepath.Abs(expandHome(configRoot))
	default:
		home, err = defaultHome()
	}
	if err != nil {
		return AppPaths{}, fmt.Errorf("resolve data directory: %w", err)
	}

	return newAppPaths(home), nil
}

func newAppPaths(home string) AppPaths {
	return AppPaths{
		Home:         home,
		ToolchainDir: filepath.Join(home, "toolchains"),
	}
}

func defaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "toolchainctl"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "toolchainctl"), nil
		}
		return filepath.Join(home, "AppData", "Local", "toolchainctl"), nil
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "toolchainctl"), nil
		}
		return filepath.Join(home, ".local", "share", "toolchainctl"), nil
	}
}

// DefaultConfigFile returns the user-level config file location. The file
// need not exist.
func DefaultConfigFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("detect config dir: %w", err)
	}
	return filepath.Join(dir, "toolchainctl", "config.yaml"), nil
}

func expandHome(path string) string {
	if path == "~" || (len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
