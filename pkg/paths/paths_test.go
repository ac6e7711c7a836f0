package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDataDirHonoursEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
}

func TestDataDirExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvDataDir, "~/oi-data")
	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join(home, "oi-data"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDataDirDefaultsUnderUserConfig(t *testing.T) {
	cfg := t.TempDir()
	t.Setenv(EnvDataDir, "")
	t.Setenv("XDG_CONFIG_HOME", cfg)
	t.Setenv("HOME", t.TempDir())
	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	base, _ := os.UserConfigDir()
	if want := filepath.Join(base, appDirName); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestEnsureSubCreatesDirectory(t *testing.T) {
	t.Setenv(EnvDataDir, t.TempDir())
	dir, err := EnsureSub(ProfilesDir)
	if err != nil {
		t.Fatalf("EnsureSub: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected %s to exist as a directory", dir)
	}
	if filepath.Base(dir) != ProfilesDir {
		t.Fatalf("unexpected dir %q", dir)
	}
}

func TestExpandHomeRejectsEmpty(t *testing.T) {
	if _, err := ExpandHome("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestExpandHomeLeavesAbsolutePaths(t *testing.T) {
	got, err := ExpandHome("/var/tmp/x")
	if err != nil || got != "/var/tmp/x" {
		t.Fatalf("ExpandHome = %q, %v", got, err)
	}
}
