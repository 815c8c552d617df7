// Package interp wires NAAb's independently-implemented collaborators
// into one runnable Interpreter: value.Environment, gc.Collector,
// eval.Evaluator, module.Registry, cache.Store, polyglot.Dispatcher,
// and naaberr.Reporter. No single one of those packages knows about
// the others outside the narrow interfaces internal/eval declares; this
// package is where the concrete wiring happens.
package interp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/cache"
	"github.com/b-macker/NAAb-sub013/internal/config"
	"github.com/b-macker/NAAb-sub013/internal/eval"
	"github.com/b-macker/NAAb-sub013/internal/gc"
	"github.com/b-macker/NAAb-sub013/internal/lexer"
	"github.com/b-macker/NAAb-sub013/internal/module"
	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/parser"
	"github.com/b-macker/NAAb-sub013/internal/polyglot"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// Interpreter bundles every collaborator a `naab run|check|parse`
// invocation needs into one reusable value.
type Interpreter struct {
	Config    config.Config
	Evaluator *eval.Evaluator
	Modules   *module.Registry
	Cache     *cache.Store
	GC        *gc.Collector
	Reporter  *naaberr.Reporter

	out io.Writer
}

// New constructs an Interpreter from cfg, wiring the polyglot
// dispatcher's cache to cfg.CacheDir and the module registry's search
// path to cfg.ModulePath. out receives everything the script prints.
func New(cfg config.Config, out io.Writer) (*Interpreter, error) {
	gcCollector := gc.New(cfg.GCThreshold)

	cacheStore, err := cache.New(cfg.CacheDir, cache.DefaultMaxBytes, func() int64 { return time.Now().Unix() })
	if err != nil {
		return nil, fmt.Errorf("interp: initializing cache at %s: %w", cfg.CacheDir, err)
	}

	dispatcher := polyglot.New(cacheStore, 0)

	globalModuleDir := cfg.CacheDir
	registry := module.NewRegistry(cfg.ModulePath, globalModuleDir)

	evaluator := eval.New(eval.Config{
		GC:           gcCollector,
		Out:          out,
		Polyglot:     dispatcher,
		Groups:       dispatcher,
		ModuleLoader: registry,
	})
	registry.BindEvaluator(evaluator)

	return &Interpreter{
		Config:    cfg,
		Evaluator: evaluator,
		Modules:   registry,
		Cache:     cacheStore,
		GC:        gcCollector,
		Reporter:  &naaberr.Reporter{Color: cfg.Color},
		out:       out,
	}, nil
}

// Parse lexes and parses source, returning its AST or a formatted
// report of every accumulated lex/parse error.
func (interp *Interpreter) Parse(source, filename string) (*ast.Program, string) {
	prog, errs := parser.New(lexer.New(source, filename)).ParseProgram()
	if len(errs) > 0 {
		return nil, formatParseErrors(errs)
	}
	return prog, ""
}

func formatParseErrors(errs []string) string {
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString("ParseError: ")
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Run parses and evaluates source in a fresh global environment,
// returning the program's result value or a rendered NaabError report
// on failure. filename attributes positions in error output.
func (interp *Interpreter) Run(ctx context.Context, source, filename string) (value.Value, string) {
	prog, parseReport := interp.Parse(source, filename)
	if prog == nil {
		return nil, parseReport
	}

	env := value.NewEnvironment()
	interp.Evaluator.RegisterBuiltins(env)
	result, err := interp.Evaluator.Run(ctx, prog, env)
	if err != nil {
		return nil, interp.renderError(err, source, filename)
	}
	return result, ""
}

func (interp *Interpreter) renderError(err error, source, filename string) string {
	ne, ok := err.(*naaberr.NaabError)
	if !ok {
		return err.Error() + "\n"
	}
	interp.Reporter.InScopeNames = nil
	return interp.Reporter.Render(ne, source, filename)
}

// ReadSource reads filename, or returns its content verbatim for the
// synthetic "<eval>" name cmd/naab uses for inline `-e` code.
func ReadSource(filename, inline string) (string, string, error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return string(data), filename, nil
}
