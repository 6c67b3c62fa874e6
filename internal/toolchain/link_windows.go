//go:build windows

package toolchain

import (
	"errors"

	"golang.org/x/sys/windows"
)

// DefaultLinker returns the platform link strategy. Creating symlinks on
// Windows needs SeCreateSymbolicLinkPrivilege or developer mode, so a failed
// attempt falls back to a shim file.
func DefaultLinker(logger Logger) Linker {
	if logger == nil {
		logger = noopLogger{}
	}
	return ShimFallbackLinker{
		OnFallback: func(err error) {
			if errors.Is(err, windows.ERROR_PRIVILEGE_NOT_HELD) {
				logger.Debug("symlink privilege not held; writing shim")
				return
			}
			logger.Debug("symlink failed; writing shim", "err", err)
		},
	}
}
