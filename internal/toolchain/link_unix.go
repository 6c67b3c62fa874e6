//go:build !windows

package toolchain

// DefaultLinker returns the platform link strategy. Unix can always create
// symlinks, so there is no shim fallback.
func DefaultLinker(logger Logger) Linker {
	return SymlinkLinker{}
}
