package toolchain

import (
	"errors"
	"fmt"
	"os"
)

// Linker makes target point at the candidate interpreter.
type Linker interface {
	Link(candidate, target string) error
}

// SymlinkLinker creates a symbolic link and nothing else.
type SymlinkLinker struct{}

func (SymlinkLinker) Link(candidate, target string) error {
	if err := os.Symlink(candidate, target); err != nil {
		return &LinkError{Target: target, Candidate: candidate, Err: fmt.Errorf("symlink interpreter: %w", err)}
	}
	return nil
}

// ShimFallbackLinker tries a symbolic link first and, when that fails,
// writes a shim: a text file whose only content is the candidate path.
type ShimFallbackLinker struct {
	// Symlink defaults to os.Symlink.
	Symlink func(oldname, newname string) error
	// OnFallback, when set, is told why the symlink attempt failed.
	OnFallback func(err error)
}

func (l ShimFallbackLinker) Link(candidate, target string) error {
	symlink := l.Symlink
	if symlink == nil {
		symlink = os.Symlink
	}

	linkErr := symlink(candidate, target)
	if linkErr == nil {
		return nil
	}
	if l.OnFallback != nil {
		l.OnFallback(linkErr)
	}

	if err := os.WriteFile(target, []byte(candidate), 0o644); err != nil {
		return &LinkError{
			Target:    target,
			Candidate: candidate,
			Err:       errors.Join(fmt.Errorf("symlink interpreter: %w", linkErr), fmt.Errorf("write shim: %w", err)),
		}
	}
	return nil
}

var (
	_ Linker = SymlinkLinker{}
	_ Linker = ShimFallbackLinker{}
)
