package polyglot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/b-macker/NAAb-sub013/internal/value"
)

// scriptAdapter runs an interpreted language by writing a wrapper
// source file that reads a JSON bindings object from stdin, declares
// each binding as a native local, runs the user's code verbatim, then
// prints a `{"value": ...}` result envelope.
type scriptAdapter struct {
	interpreter string
	ext         string
	// render builds the full wrapper source given the sorted binding
	// names and the user's inline code.
	render func(names []string, code string) string
}

func (a *scriptAdapter) Execute(ctx context.Context, code string, bindings map[string]value.Value) (value.Value, error) {
	dir, cleanup, err := newWorkDir()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	names := sortedKeys(bindings)
	source := a.render(names, code)
	path := filepath.Join(dir, "block"+a.ext)
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		return nil, err
	}

	stdin, err := bindingsToJSON(bindings)
	if err != nil {
		return nil, err
	}

	out, err := runProcessStdin(ctx, a.interpreter, []string{path}, dir, stdin)
	if err != nil {
		return nil, err
	}
	return jsonToValue(lastLine(out))
}

func sortedKeys(m map[string]value.Value) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// lastLine returns the final non-empty line of out, since a block's own
// `print` side effects — debugging output during development — may
// precede the result envelope on stdout.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return "null"
}

func renderPython(names []string, code string) string {
	var b strings.Builder
	b.WriteString("import json, sys\n__naab_bindings = json.loads(sys.stdin.read())\n")
	for _, n := range names {
		fmt.Fprintf(&b, "%s = __naab_bindings[%q]\n", n, n)
	}
	b.WriteString(code)
	b.WriteString("\ntry:\n    __naab_result = result\nexcept NameError:\n    __naab_result = None\n")
	b.WriteString("print(json.dumps({\"value\": __naab_result}))\n")
	return b.String()
}

func renderJavaScript(names []string, code string) string {
	var b strings.Builder
	b.WriteString("const __naab_bindings = JSON.parse(require('fs').readFileSync(0, 'utf-8'));\n")
	for _, n := range names {
		fmt.Fprintf(&b, "let %s = __naab_bindings[%s];\n", n, strconv.Quote(n))
	}
	b.WriteString(code)
	b.WriteString("\nconsole.log(JSON.stringify({value: (typeof result !== 'undefined') ? result : null}));\n")
	return b.String()
}

func renderRuby(names []string, code string) string {
	var b strings.Builder
	b.WriteString("require 'json'\n__naab_bindings = JSON.parse(STDIN.read)\n")
	for _, n := range names {
		fmt.Fprintf(&b, "%s = __naab_bindings[%q]\n", n, n)
	}
	b.WriteString(code)
	b.WriteString("\nputs JSON.generate({\"value\" => (defined?(result) ? result : nil)})\n")
	return b.String()
}
