package module

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/eval"
	"github.com/b-macker/NAAb-sub013/internal/lexer"
	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/parser"
	"github.com/b-macker/NAAb-sub013/internal/token"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// Registry implements eval.ModuleLoader. Import evaluation is
// load-on-demand and recursive: Load calls back into the shared
// Evaluator to run a module's body, and any `use` statement inside
// that body re-enters Load before the enclosing module's own
// statements continue. This already gives the required topological
// order — a module's imports finish evaluating strictly before the
// module that `use`s them does — without a separate sort pass over a
// pre-registered unit set.
type Registry struct {
	searchPaths []string
	globalDir   string
	cache       *moduleCache
	evaluator   *eval.Evaluator

	mu       sync.Mutex
	loading  map[string]bool
	dirStack []string
}

// NewRegistry constructs a Registry. A nil searchPaths defaults to the
// current directory.
func NewRegistry(searchPaths []string, globalDir string) *Registry {
	if searchPaths == nil {
		searchPaths = []string{"."}
	}
	return &Registry{
		searchPaths: searchPaths,
		globalDir:   globalDir,
		cache:       newModuleCache(),
		loading:     make(map[string]bool),
	}
}

// BindEvaluator wires the shared Evaluator used to run every module's
// top-level statements. Must be called once, before the first use
// statement is evaluated; internal/interp does this right after
// constructing both, breaking what would otherwise be a construction
// cycle (the Evaluator needs a ModuleLoader, the loader needs the
// Evaluator).
func (r *Registry) BindEvaluator(e *eval.Evaluator) { r.evaluator = e }

func (r *Registry) pushDir(dir string) {
	r.mu.Lock()
	r.dirStack = append(r.dirStack, dir)
	r.mu.Unlock()
}

func (r *Registry) popDir() {
	r.mu.Lock()
	r.dirStack = r.dirStack[:len(r.dirStack)-1]
	r.mu.Unlock()
}

func (r *Registry) currentDir() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.dirStack) == 0 {
		return "."
	}
	return r.dirStack[len(r.dirStack)-1]
}

// Load implements eval.ModuleLoader: resolve path, return its cached
// exports table on a repeat import, or parse, recursively resolve its
// own imports, and evaluate it in an isolated environment on a first
// import.
func (r *Registry) Load(path string) (map[string]value.Value, error) {
	resolved, err := ResolveModulePath(path, r.currentDir(), r.searchPaths, r.globalDir)
	if err != nil {
		return nil, naaberr.New(naaberr.TypeModuleError, token.Position{}, "cannot resolve module %q: %v", path, err)
	}

	if m, ok := r.cache.Get(resolved); ok {
		return m.Exports, nil
	}

	r.mu.Lock()
	if r.loading[resolved] {
		r.mu.Unlock()
		return nil, naaberr.New(naaberr.TypeModuleError, token.Position{}, "circular import detected while loading %q", resolved)
	}
	r.loading[resolved] = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		delete(r.loading, resolved)
		r.mu.Unlock()
	}()

	if r.evaluator == nil {
		return nil, naaberr.New(naaberr.TypeInternalError, token.Position{}, "module registry has no evaluator bound")
	}

	src, err := os.ReadFile(resolved)
	if err != nil {
		return nil, naaberr.New(naaberr.TypeModuleError, token.Position{}, "cannot load module %q: %v", path, err)
	}

	prog, perrs := parser.New(lexer.New(string(src), resolved)).ParseProgram()
	if len(perrs) > 0 {
		return nil, naaberr.New(naaberr.TypeModuleError, token.Position{}, "module %q has parse errors: %v", path, perrs)
	}

	r.pushDir(filepath.Dir(resolved))
	defer r.popDir()

	moduleEnv := value.NewEnvironment()
	r.evaluator.RegisterBuiltins(moduleEnv)
	if _, err := r.evaluator.Run(context.Background(), prog, moduleEnv); err != nil {
		return nil, err
	}

	exports := collectExports(prog, moduleEnv)
	r.cache.Put(resolved, &Module{
		Path:    resolved,
		Name:    leafName(resolved),
		Exports: exports,
	})
	return exports, nil
}

// collectExports walks a module's top-level statements for
// export-wrapped let/fn declarations and reads their bound values back
// out of the environment they just finished executing in. All
// statements already ran (not only exported ones), so an exported
// function's closure can see sibling module-level state
// regardless of export order. Exported struct declarations need no
// entry here: internal/eval's struct namespace is process-global (see
// Evaluator.StructDefs), so `Struct<Name>` is already visible to an
// importer once the module's body has run.
func collectExports(prog *ast.Program, env *value.Environment) map[string]value.Value {
	exports := make(map[string]value.Value)
	for _, stmt := range prog.Statements {
		switch d := stmt.(type) {
		case *ast.ExportStatement:
			// `export let ...`: LetStatement has no Exported field of its
			// own, so the parser wraps it instead of setting a flag.
			if name, ok := exportedName(d.Decl); ok {
				if v, ok := env.Lookup(name); ok {
					exports[name] = v
				}
			}
		case *ast.FunctionDecl:
			if d.Exported {
				if v, ok := env.Lookup(d.Name); ok {
					exports[d.Name] = v
				}
			}
		case *ast.StructDecl:
			// Exported structs need no entry: the struct namespace is
			// process-global (see Evaluator.StructDefs), already visible.
		}
	}
	return exports
}

func exportedName(decl ast.Statement) (string, bool) {
	switch d := decl.(type) {
	case *ast.LetStatement:
		return d.Name, true
	case *ast.FunctionDecl:
		return d.Name, true
	case *ast.StructDecl:
		return "", false
	default:
		return "", false
	}
}

// Clear drops every cached module, forcing the next use of each to
// re-parse and re-evaluate. Exposed for long-lived hosts (a REPL, a
// watch-mode `naab run --watch`) that need to pick up edited modules.
func (r *Registry) Clear() { r.cache.Clear() }

// Size reports the number of distinct modules currently cached.
func (r *Registry) Size() int { return r.cache.Size() }
