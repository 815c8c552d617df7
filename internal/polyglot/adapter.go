// Package polyglot implements NAAb's polyglot executor adapters and its
// dependency analyzer and parallel scheduler: running an inline
// foreign-code block in its target language, marshalling bound
// variables in and a return value back out, and dispatching a batch of
// independent blocks concurrently with snapshot isolation.
//
// Each invocation runs in its own subprocess under a context.Context
// deadline; a failed process is never reused across blocks, so a
// poisoned worker is evicted rather than recovered.
package polyglot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/token"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// DefaultTimeout bounds a single block's execution when the caller sets
// no deadline on ctx. Every invocation is timeout-bound.
const DefaultTimeout = 10 * time.Second

// Adapter runs one inline code block for a specific language.
type Adapter interface {
	// Execute runs code with bindings injected as that language's native
	// variables, and returns code's marshalled result value.
	Execute(ctx context.Context, code string, bindings map[string]value.Value) (value.Value, error)
}

// Cache is the subset of internal/cache's store an Adapter needs:
// content-addressed lookup/store of a compiled artifact, keyed by
// whatever fingerprint the adapter computes.
type Cache interface {
	Get(key string) (path string, ok bool)
	Put(key string, artifact []byte) (path string, err error)
}

// Dispatcher implements eval.PolyglotRunner and eval.GroupRunner,
// routing each inline block to its language's Adapter and each
// independent group to the errgroup-based scheduler in group.go.
type Dispatcher struct {
	adapters map[string]Adapter
	timeout  time.Duration
}

// New constructs a Dispatcher with every supported language wired to a
// process-based adapter. timeout is applied when ctx carries no earlier
// deadline; pass 0 for DefaultTimeout.
func New(cache Cache, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := &Dispatcher{adapters: make(map[string]Adapter), timeout: timeout}
	d.adapters["python"] = &scriptAdapter{interpreter: "python3", ext: ".py", render: renderPython}
	d.adapters["javascript"] = &scriptAdapter{interpreter: "node", ext: ".js", render: renderJavaScript}
	d.adapters["js"] = d.adapters["javascript"]
	d.adapters["ruby"] = &scriptAdapter{interpreter: "ruby", ext: ".rb", render: renderRuby}
	d.adapters["shell"] = &shellAdapter{}
	d.adapters["sh"] = d.adapters["shell"]
	d.adapters["cpp"] = &compiledAdapter{cache: cache, lang: "cpp", ext: ".cpp", compiler: "g++", render: renderCpp}
	d.adapters["rust"] = &compiledAdapter{cache: cache, lang: "rust", ext: ".rs", compiler: "rustc", render: renderRust}
	d.adapters["go"] = &compiledAdapter{cache: cache, lang: "go", ext: ".go", compiler: "go", render: renderGo, buildArgs: []string{"build", "-o"}}
	d.adapters["csharp"] = &compiledAdapter{cache: cache, lang: "csharp", ext: ".cs", compiler: "dotnet", render: renderCSharp, isDotnet: true}
	d.adapters["cs"] = d.adapters["csharp"]
	return d
}

// Run implements eval.PolyglotRunner.
func (d *Dispatcher) Run(ctx context.Context, language, code string, bindings map[string]value.Value) (value.Value, error) {
	adapter, ok := d.adapters[language]
	if !ok {
		return nil, naaberr.New(naaberr.TypePolyglotError, token.Position{}, "unsupported polyglot language: %s", language)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	v, err := adapter.Execute(ctx, code, bindings)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, naaberr.New(naaberr.TypeTimeoutError, token.Position{}, "%s block exceeded its execution deadline", language)
		}
		return nil, naaberr.New(naaberr.TypePolyglotError, token.Position{}, "%s block failed: %v", language, err)
	}
	return v, nil
}

// runProcess invokes name with args, feeding input (if non-empty) as
// stdin, and returns captured stdout or a descriptive error including
// stderr. Every adapter in this package funnels its subprocess call
// through here so timeout/cancellation behaves identically everywhere.
func runProcess(ctx context.Context, name string, args []string, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, stderr.String())
	}
	return stdout.String(), nil
}

// runProcessStdin is runProcess with stdin content supplied, used by
// every adapter that injects bindings via a JSON envelope on stdin.
func runProcessStdin(ctx context.Context, name string, args []string, dir, stdin string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = bytes.NewBufferString(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, stderr.String())
	}
	return stdout.String(), nil
}

// newWorkDir creates a unique scratch directory for one invocation, so
// each block runs in isolation, correlated by a uuid for log/temp-file
// matching.
func newWorkDir() (string, func(), error) {
	dir, err := os.MkdirTemp("", "naab-polyglot-"+uuid.NewString()[:8]+"-")
	if err != nil {
		return "", nil, err
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}
