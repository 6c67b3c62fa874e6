package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"toolchainctl/internal/config"
)

func TestCheckConfigWithError(t *testing.T) {
	result := checkConfig(config.Config{}, fmt.Errorf("config file not found"))

	if result.Status != "error" {
		t.Errorf("got status=%q, want error", result.Status)
	}
	if result.Name != "Config" {
		t.Errorf("got name=%q, want Config", result.Name)
	}
}

func TestCheckConfigValid(t *testing.T) {
	result := checkConfig(config.Default(), nil)

	if result.Status != "ok" {
		t.Errorf("got status=%q, want ok", result.Status)
	}
}

func TestCheckConfigInvalidLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"
	result := checkConfig(cfg, nil)

	if result.Status != "error" {
		t.Errorf("got status=%q, want error", result.Status)
	}
}

func TestDoctorFlagsStaleToolchains(t *testing.T) {
	env := newTestEnv(t, "")
	dir := t.TempDir()
	python := writeFakePython(t, dir, "python3", "CPython", "3.11.4", false)
	if _, _, err := env.run(t, "toolchain", "register", python); err != nil {
		t.Fatalf("register: %v", err)
	}

	checks := runDoctorJSON(t, env)
	if got := statusOf(checks, "Toolchains"); got != "ok" {
		t.Fatalf("expected healthy toolchains, got %+v", checks)
	}

	// Upgrading the interpreter in place leaves the key pointing at a new version.
	writeFakePython(t, dir, "python3", "CPython", "3.11.9", false)
	checks = runDoctorJSON(t, env)
	if got := statusOf(checks, "Toolchains"); got != "warning" {
		t.Fatalf("expected stale warning, got %+v", checks)
	}
	for _, c := range checks {
		if c.Name == "Toolchains" && !strings.Contains(c.Summary, "cpython@3.11.4") {
			t.Fatalf("expected stale key in summary, got %q", c.Summary)
		}
	}
}

func TestDoctorTextOutput(t *testing.T) {
	env := newTestEnv(t, "")

	stdout, _, err := env.run(t, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	for _, want := range []string{"TOOLCHAIN HEALTH:", "Config:", "Root:", "Toolchains:", "none registered"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output %q", want, stdout)
		}
	}
}

func TestDoctorReportsBrokenCatalog(t *testing.T) {
	catalogFile := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(catalogFile, []byte("toolchains: [\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	env := newTestEnv(t, "version: 1\ncatalog:\n  file: "+catalogFile+"\n")

	checks := runDoctorJSON(t, env)
	if got := statusOf(checks, "Catalog"); got != "error" {
		t.Fatalf("expected catalog error, got %+v", checks)
	}
}

func TestDoctorReportsEnvironmentFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	env := newTestEnv(t, "version: 1\nlog_dir: "+filepath.Join(blocker, "logs")+"\n")

	checks := runDoctorJSON(t, env)
	if got := statusOf(checks, "Config"); got != "ok" {
		t.Fatalf("expected config to validate, got %+v", checks)
	}
	var found bool
	for _, c := range checks {
		if c.Name == "Environment" {
			found = true
			if c.Status != "error" || !strings.Contains(c.Summary, "logs directory") {
				t.Fatalf("unexpected environment check %+v", c)
			}
		}
	}
	if !found {
		t.Fatalf("expected an Environment check, got %+v", checks)
	}
}

func runDoctorJSON(t *testing.T, env testEnv) []healthCheck {
	t.Helper()
	stdout, _, err := env.run(t, "doctor", "--json")
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	var checks []healthCheck
	if err := json.Unmarshal([]byte(stdout), &checks); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	return checks
}

func statusOf(checks []healthCheck, name string) string {
	for _, c := range checks {
		if c.Name == name {
			return c.Status
		}
	}
	return ""
}
