package interp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/b-macker/NAAb-sub013/internal/config"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")
	cfg.ModulePath = []string{t.TempDir()}

	var out bytes.Buffer
	it, err := New(cfg, &out)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return it, &out
}

func TestRunReturnsLastExpressionValue(t *testing.T) {
	it, _ := newTestInterpreter(t)

	result, report := it.Run(context.Background(), "let x = 1 + 2; x * 10;", "<test>")
	if report != "" {
		t.Fatalf("unexpected error report: %s", report)
	}
	if result == nil {
		t.Fatal("expected a result value")
	}
	if got := result.String(); got != "30" {
		t.Errorf("result = %s, want 30", got)
	}
}

func TestRunReportsParseErrors(t *testing.T) {
	it, _ := newTestInterpreter(t)

	result, report := it.Run(context.Background(), "let = ;", "<test>")
	if result != nil {
		t.Error("expected nil result on parse failure")
	}
	if report == "" {
		t.Error("expected a non-empty parse error report")
	}
}

func TestRunRendersRuntimeNaabError(t *testing.T) {
	it, _ := newTestInterpreter(t)

	result, report := it.Run(context.Background(), "1 / 0;", "<test>")
	if result != nil {
		t.Error("expected nil result on division by zero")
	}
	if report == "" {
		t.Fatal("expected a rendered runtime error report")
	}
}

func TestRunHasBuiltinsInScope(t *testing.T) {
	it, out := newTestInterpreter(t)

	result, report := it.Run(context.Background(), `print("hi"); len("abc");`, "<test>")
	if report != "" {
		t.Fatalf("unexpected error report: %s", report)
	}
	if result.String() != "3" {
		t.Errorf("result = %s, want 3", result.String())
	}
	if out.String() != "hi\n" {
		t.Errorf("printed output = %q, want %q", out.String(), "hi\n")
	}
}

func TestReadSourcePrefersInline(t *testing.T) {
	src, name, err := ReadSource("nonexistent-file.naab", "1 + 1;")
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if name != "<eval>" {
		t.Errorf("name = %q, want <eval>", name)
	}
	if src != "1 + 1;" {
		t.Errorf("src = %q", src)
	}
}

func TestReadSourceReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.naab")
	if err := os.WriteFile(path, []byte("let x = 1;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src, name, err := ReadSource(path, "")
	if err != nil {
		t.Fatalf("ReadSource: %v", err)
	}
	if name != path {
		t.Errorf("name = %q, want %q", name, path)
	}
	if src != "let x = 1;" {
		t.Errorf("src = %q", src)
	}
}
