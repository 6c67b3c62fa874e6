package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePrefersFlag(t *testing.T) {
	flagRoot := t.TempDir()
	t.Setenv(HomeEnv, t.TempDir())

	pp, err := Resolve(flagRoot, "/ignored")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pp.Home != flagRoot {
		t.Fatalf("expected home %s, got %s", flagRoot, pp.Home)
	}
	if pp.ToolchainDir != filepath.Join(flagRoot, "toolchains") {
		t.Fatalf("unexpected toolchain dir %s", pp.ToolchainDir)
	}
}

func TestResolveEnvBeforeConfig(t *testing.T) {
	envRoot := t.TempDir()
	t.Setenv(HomeEnv, envRoot)

	pp, err := Resolve("", filepath.Join(t.TempDir(), "from-config"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pp.Home != envRoot {
		t.Fatalf("expected env root %s, got %s", envRoot, pp.Home)
	}
}

func TestResolveConfigRoot(t *testing.T) {
	t.Setenv(HomeEnv, "")
	configRoot := filepath.Join(t.TempDir(), "data")

	pp, err := Resolve("", configRoot)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pp.Home != configRoot {
		t.Fatalf("expected config root %s, got %s", configRoot, pp.Home)
	}
	if pp.ToolchainDir != filepath.Join(configRoot, "toolchains") {
		t.Fatalf("unexpected toolchain dir %s", pp.ToolchainDir)
	}
}

func TestResolveDefaultIsAbsolute(t *testing.T) {
	t.Setenv(HomeEnv, "")
	pp, err := Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !filepath.IsAbs(pp.Home) {
		t.Fatalf("expected absolute home, got %s", pp.Home)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/toolchains"); got != filepath.Join(home, "toolchains") {
		t.Fatalf("unexpected expansion %s", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("expected absolute path untouched, got %s", got)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("expected file to exist, ok=%v err=%v", ok, err)
	}
	if ok, err := FileExists(dir); err != nil || ok {
		t.Fatalf("expected directory to not count as file, ok=%v err=%v", ok, err)
	}
	if ok, err := FileExists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Fatalf("expected missing file, ok=%v err=%v", ok, err)
	}
}
