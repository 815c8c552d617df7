package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NAAB_CACHE_DIR", "NAAB_MODULE_PATH", "NAAB_GC_THRESHOLD", "NAAB_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GCThreshold <= 0 {
		t.Errorf("expected a positive default GC threshold, got %d", cfg.GCThreshold)
	}
	if !cfg.Color {
		t.Error("expected color to default to true")
	}
	if len(cfg.ModulePath) != 1 || cfg.ModulePath[0] != "." {
		t.Errorf("expected default module path ['.'], got %v", cfg.ModulePath)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NAAB_CACHE_DIR", "/tmp/custom-cache")
	t.Setenv("NAAB_MODULE_PATH", "/a"+string(filepath.ListSeparator)+"/b")
	t.Setenv("NAAB_GC_THRESHOLD", "5000")
	t.Setenv("NAAB_COLOR", "0")

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheDir != "/tmp/custom-cache" {
		t.Errorf("got cache dir %q", cfg.CacheDir)
	}
	if len(cfg.ModulePath) != 2 || cfg.ModulePath[0] != "/a" || cfg.ModulePath[1] != "/b" {
		t.Errorf("got module path %v", cfg.ModulePath)
	}
	if cfg.GCThreshold != 5000 {
		t.Errorf("got GC threshold %d", cfg.GCThreshold)
	}
	if cfg.Color {
		t.Error("expected NAAB_COLOR=0 to disable color")
	}
}

func TestFlagOverridesBeatEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NAAB_CACHE_DIR", "/tmp/from-env")

	colorOff := false
	cfg, err := Load(Overrides{CacheDir: "/tmp/from-flag", Color: &colorOff})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheDir != "/tmp/from-flag" {
		t.Errorf("expected flag to win, got %q", cfg.CacheDir)
	}
	if cfg.Color {
		t.Error("expected flag-set color=false to win")
	}
}

func TestFileConfigIsLowestPriority(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := os.MkdirAll(filepath.Join(home, ".naab"), 0o755); err != nil {
		t.Fatal(err)
	}
	yamlContent := "cache_dir: /from/file\ngc_threshold: 42\n"
	if err := os.WriteFile(filepath.Join(home, ".naab", "config.yaml"), []byte(yamlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheDir != "/from/file" {
		t.Errorf("expected file value, got %q", cfg.CacheDir)
	}
	if cfg.GCThreshold != 42 {
		t.Errorf("expected file value 42, got %d", cfg.GCThreshold)
	}

	t.Setenv("NAAB_CACHE_DIR", "/from/env")
	cfg2, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg2.CacheDir != "/from/env" {
		t.Errorf("expected env to beat file, got %q", cfg2.CacheDir)
	}
}
