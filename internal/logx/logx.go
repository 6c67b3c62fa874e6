package logx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// Level is a charmbracelet/log level name; empty means warn.
	Level string
	// Dir, when set, receives a timestamped log file in addition to Output.
	Dir string
	// Output defaults to os.Stderr.
	Output io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates the application logger. The returned closer should be closed
// when logging is no longer needed.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.WarnLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.Dir != "" {
		file, err := openLogFile(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(out, file)
		closer = file
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "toolchainctl",
		ReportTimestamp: opts.Dir != "",
		TimeFormat:      time.RFC3339,
	})
	return logger, closer, nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	file, err := os.OpenFile(filepath.Join(dir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
