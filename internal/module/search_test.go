package module

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveModulePathFindsRelativeToImporter(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "utils.naab")
	if err := os.WriteFile(target, []byte("let x = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolved, err := ResolveModulePath("utils", dir, nil, "")
	if err != nil {
		t.Fatalf("ResolveModulePath: %v", err)
	}
	want, _ := filepath.Abs(target)
	if resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}
}

func TestResolveModulePathTriesExplicitExtensionFirst(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "utils.naab")
	os.WriteFile(target, []byte(""), 0o644)

	resolved, err := ResolveModulePath("utils.naab", dir, nil, "")
	if err != nil {
		t.Fatalf("ResolveModulePath: %v", err)
	}
	want, _ := filepath.Abs(target)
	if resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}
}

func TestResolveModulePathFallsBackToSearchPathsThenGlobal(t *testing.T) {
	searchDir := t.TempDir()
	globalDir := t.TempDir()
	os.WriteFile(filepath.Join(globalDir, "shared.naab"), []byte(""), 0o644)

	resolved, err := ResolveModulePath("shared", t.TempDir(), []string{searchDir}, globalDir)
	if err != nil {
		t.Fatalf("ResolveModulePath: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(globalDir, "shared.naab"))
	if resolved != want {
		t.Errorf("resolved = %q, want %q", resolved, want)
	}
}

func TestResolveModulePathReportsTriedCandidates(t *testing.T) {
	_, err := ResolveModulePath("nope", t.TempDir(), nil, "")
	if err == nil {
		t.Fatal("expected an error for an unresolvable module")
	}
}

func TestLeafNameStripsDirAndExtension(t *testing.T) {
	if got := leafName("/a/b/utils.naab"); got != "utils" {
		t.Errorf("leafName = %q, want utils", got)
	}
}
