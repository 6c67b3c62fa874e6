package tui

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/x/term"
)

// OutputMode describes how command output should be rendered.
type OutputMode int

const (
	// ModeTUI redraws a live table while work is running.
	ModeTUI OutputMode = iota
	// ModePlain writes static lines once work completes.
	ModePlain
	// ModeJSON writes structured JSON output.
	ModeJSON
)

// DetectMode determines the output mode for the given writer.
func DetectMode(out io.Writer, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	file, ok := out.(*os.File)
	if !ok || !term.IsTerminal(file.Fd()) {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		t := os.Getenv("TERM")
		if t == "" || strings.EqualFold(t, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}
