package cmd

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRunCmd(t *testing.T) *cobra.Command {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"NAAB_CACHE_DIR", "NAAB_MODULE_PATH", "NAAB_GC_THRESHOLD", "NAAB_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cacheDir = ""
	modulePath = nil
	evalExpr = ""
	showCache = false

	c := &cobra.Command{Use: "run"}
	c.Flags().AddFlagSet(runCmd.Flags())
	return c
}

func TestRunScriptInlineSuccess(t *testing.T) {
	c := newTestRunCmd(t)
	evalExpr = "1 + 1;"

	if err := runScript(c, nil); err != nil {
		t.Fatalf("runScript: %v", err)
	}
}

func TestRunScriptRequiresFileOrEval(t *testing.T) {
	c := newTestRunCmd(t)

	err := runScript(c, nil)
	if err == nil {
		t.Fatal("expected an error when neither a file nor -e is given")
	}
}

func TestRunScriptParseFailureExitCode(t *testing.T) {
	c := newTestRunCmd(t)
	evalExpr = "let = ;"

	err := runScript(c, nil)
	if err == nil {
		t.Fatal("expected a parse failure")
	}
	if ExitCode(err) != exitParseFailure {
		t.Errorf("exit code = %d, want %d", ExitCode(err), exitParseFailure)
	}
}

func TestRunScriptUncaughtExceptionExitCode(t *testing.T) {
	c := newTestRunCmd(t)
	evalExpr = "1 / 0;"

	err := runScript(c, nil)
	if err == nil {
		t.Fatal("expected an uncaught runtime exception")
	}
	if ExitCode(err) != exitUncaughtException {
		t.Errorf("exit code = %d, want %d", ExitCode(err), exitUncaughtException)
	}
}

func TestRunScriptExposesBuiltins(t *testing.T) {
	c := newTestRunCmd(t)
	evalExpr = `print("from builtin"); len([1, 2, 3]);`

	if err := runScript(c, nil); err != nil {
		t.Fatalf("runScript: %v", err)
	}
}

func TestRunScriptReadsFile(t *testing.T) {
	c := newTestRunCmd(t)
	path := writeNaabFile(t, "let x = 41; x + 1;")

	if err := runScript(c, []string{path}); err != nil {
		t.Fatalf("runScript: %v", err)
	}
}
