package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNaabFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.naab")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCheckAcceptsWellFormedProgram(t *testing.T) {
	path := writeNaabFile(t, `
struct Point { x: int, y: int }

fn dist(p: Point) -> float {
	return 0.0;
}

let origin = new Point { x: 0, y: 0 };
`)
	if err := runCheck(nil, []string{path}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
}

func TestRunCheckRejectsUnknownType(t *testing.T) {
	path := writeNaabFile(t, `fn f(x: Nonexistent) -> int { return 1; }`)

	err := runCheck(nil, []string{path})
	if err == nil {
		t.Fatal("expected a check failure for an unresolved type")
	}
	if ExitCode(err) != exitParseFailure {
		t.Errorf("exit code = %d, want %d", ExitCode(err), exitParseFailure)
	}
}

func TestRunCheckRejectsUnknownStructField(t *testing.T) {
	path := writeNaabFile(t, `
struct Point { x: int, y: int }
let p = new Point { x: 0, z: 0 };
`)
	err := runCheck(nil, []string{path})
	if err == nil {
		t.Fatal("expected a check failure for an unknown struct field")
	}
}

func TestRunCheckRejectsParseError(t *testing.T) {
	path := writeNaabFile(t, `let = ;`)

	err := runCheck(nil, []string{path})
	if err == nil {
		t.Fatal("expected a parse failure")
	}
	if ExitCode(err) != exitParseFailure {
		t.Errorf("exit code = %d, want %d", ExitCode(err), exitParseFailure)
	}
}

func TestRunCheckAcceptsGenericStruct(t *testing.T) {
	path := writeNaabFile(t, `
struct Box<T> { value: T }
fn unwrap<T>(b: Box<T>) -> T { return b.value; }
`)
	if err := runCheck(nil, []string{path}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
}
