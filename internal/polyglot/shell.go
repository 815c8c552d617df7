package polyglot

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/b-macker/NAAb-sub013/internal/value"
)

// shellAdapter runs a shell block with each binding exported as an
// environment variable, and returns a *value.Dict with three keys
// (stdout, stderr, exit_code) rather than a JSON envelope, since a shell
// script's natural output channel is plain text, not JSON. The result is
// a Dict, not a Struct value; no StructDef is defined for it.
type shellAdapter struct{}

func (shellAdapter) Execute(ctx context.Context, code string, bindings map[string]value.Value) (value.Value, error) {
	dir, cleanup, err := newWorkDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	path := filepath.Join(dir, "block.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nset -e\n"+code+"\n"), 0o700); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "/bin/sh", path)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), shellEnv(bindings)...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	exitCode := 0
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, fmt.Errorf("shell: %w", runErr)
		}
	}

	result := value.NewDict()
	result.Set(value.String{Value: "stdout"}, value.String{Value: stdout.String()})
	result.Set(value.String{Value: "stderr"}, value.String{Value: stderr.String()})
	result.Set(value.String{Value: "exit_code"}, value.Int{Value: int64(exitCode)})
	return result, nil
}

// shellEnv renders bindings as NAME=value environment entries. Only
// primitive bindings have an unambiguous shell representation; a
// List/Dict/Struct binding is flattened to its String() form, matching
// how a shell script would already have to consume it (no native
// compound-value shell syntax exists).
func shellEnv(bindings map[string]value.Value) []string {
	out := make([]string, 0, len(bindings))
	for name, v := range bindings {
		out = append(out, fmt.Sprintf("%s=%s", name, shellScalar(v)))
	}
	return out
}

func shellScalar(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return s.Value
	}
	return v.String()
}
