package toolchain

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// RunOptions adjusts a single run. Env entries are appended to the current
// environment.
type RunOptions struct {
	Env []string
}

type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes a subprocess and captures its output.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error)
}

type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}, err
}

var _ Runner = CmdRunner{}
