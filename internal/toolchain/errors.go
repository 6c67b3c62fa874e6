package toolchain

import (
	"fmt"
	"strings"
)

// ExecutionError reports a candidate interpreter that could not be run or
// exited unsuccessfully.
type ExecutionError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("%s does not appear to be a valid interpreter installation", e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += " (" + firstLine(stderr) + ")"
	}
	return msg
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ParseError reports malformed introspection output or a malformed key.
type ParseError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError wraps a rejection returned by a register validation hook.
type ValidationError struct {
	Key Key
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is not a valid toolchain: %v", e.Key, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConflictError reports a canonical target path that is already occupied.
type ConflictError struct {
	Key  Key
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("target path %s for %s is already in use", e.Path, e.Key)
}

// LinkError reports that no link strategy could create the target.
type LinkError struct {
	Target    string
	Candidate string
	Err       error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("could not link %s to %s: %v", e.Target, e.Candidate, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// IOError wraps a failed filesystem operation on the managed root.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
