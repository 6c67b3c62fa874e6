package toolchain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// InspectScript is passed to the candidate interpreter with -c. It only
// prints; it never touches the filesystem.
const InspectScript = `
import json
import platform
import sysconfig
print(json.dumps({
    "python_implementation": platform.python_implementation(),
    "python_version": platform.python_version(),
    "python_debug": bool(sysconfig.get_config_var('Py_DEBUG')),
}))
`

// inspectEnv makes the interpreter print UTF-8 whatever the user's locale.
var inspectEnv = []string{"PYTHONIOENCODING=utf-8"}

// Info is what an interpreter reports about itself.
type Info struct {
	Implementation string
	Version        string
	Debug          bool
}

// Inspector asks a candidate interpreter for its identity.
type Inspector interface {
	Inspect(ctx context.Context, path string) (Info, error)
}

// ExecInspector runs the candidate with InspectScript.
type ExecInspector struct {
	Runner Runner
}

// NewExecInspector returns an inspector backed by runner, or by CmdRunner
// when runner is nil.
func NewExecInspector(runner Runner) *ExecInspector {
	if runner == nil {
		runner = CmdRunner{}
	}
	return &ExecInspector{Runner: runner}
}

func (i *ExecInspector) Inspect(ctx context.Context, path string) (Info, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runner := i.Runner
	if runner == nil {
		runner = CmdRunner{}
	}

	result, err := runner.Run(ctx, path, []string{"-c", InspectScript}, RunOptions{Env: inspectEnv})
	if err != nil {
		return Info{}, &ExecutionError{Path: path, Stderr: string(result.Stderr), Err: err}
	}
	return ParseInspectOutput(result.Stdout)
}

type inspectRecord struct {
	Implementation *string `json:"python_implementation"`
	Version        *string `json:"python_version"`
	Debug          *bool   `json:"python_debug"`
}

// ParseInspectOutput decodes the single JSON record printed by InspectScript.
// Any extra, missing or mistyped field is a ParseError.
func ParseInspectOutput(stdout []byte) (Info, error) {
	input := strings.TrimSpace(string(stdout))

	dec := json.NewDecoder(bytes.NewReader(stdout))
	dec.DisallowUnknownFields()

	var rec inspectRecord
	if err := dec.Decode(&rec); err != nil {
		return Info{}, &ParseError{Input: input, Reason: "could not parse interpreter output as json", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Info{}, &ParseError{Input: input, Reason: "unexpected data after interpreter record"}
	}

	var missing []string
	if rec.Implementation == nil {
		missing = append(missing, "python_implementation")
	}
	if rec.Version == nil {
		missing = append(missing, "python_version")
	}
	if rec.Debug == nil {
		missing = append(missing, "python_debug")
	}
	if len(missing) > 0 {
		return Info{}, &ParseError{Input: input, Reason: "missing fields " + strings.Join(missing, ", ")}
	}

	return Info{
		Implementation: *rec.Implementation,
		Version:        *rec.Version,
		Debug:          *rec.Debug,
	}, nil
}
