package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeFakePython writes a shell script that answers the inspection script
// with a fixed identity.
func writeFakePython(t *testing.T, dir, name, impl, version string, debug bool) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreters are shell scripts")
	}
	path := filepath.Join(dir, name)
	script := fmt.Sprintf("#!/bin/sh\necho '{\"python_implementation\": \"%s\", \"python_version\": \"%s\", \"python_debug\": %t}'\n", impl, version, debug)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake interpreter: %v", err)
	}
	return path
}

type testEnv struct {
	root   string
	config string
}

func newTestEnv(t *testing.T, configYAML string) testEnv {
	t.Helper()
	t.Setenv("TOOLCHAINCTL_HOME", "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if configYAML == "" {
		configYAML = "version: 1\n"
	}
	if err := os.WriteFile(cfgPath, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return testEnv{root: filepath.Join(dir, "data"), config: cfgPath}
}

// run executes the root command with the env's config and root prepended.
func (e testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--config", e.config, "--root", e.root}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e testEnv) toolchainDir() string {
	return filepath.Join(e.root, "toolchains")
}
