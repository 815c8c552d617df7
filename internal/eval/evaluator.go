// Package eval implements NAAb's tree-walking Evaluator: the single
// component every other runtime piece is wired through. It walks the
// ast.Program produced by internal/parser, threading a value.Environment
// scope chain, consulting internal/rtype at every binding site,
// registering heap allocations with internal/gc, raising and catching
// internal/naaberr exceptions, and dispatching ast.PolyglotBlock nodes to
// whatever PolyglotRunner the host wires in (internal/polyglot, kept out
// of this package's import graph so the dependency runs the other way:
// polyglot adapters never need to know about the evaluator that calls
// them).
//
// Functions apply arguments, evaluate a body, and unwrap a return signal
// the same way most small tree-walking interpreters do; loop and call
// scopes push and pop an enclosed environment on every entry and exit.
package eval

import (
	"context"
	"io"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/gc"
	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/rtype"
	"github.com/b-macker/NAAb-sub013/internal/token"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// PolyglotRunner dispatches one inline foreign-code block to its
// language adapter. internal/polyglot implements this; this package only
// depends on the interface, so internal/polyglot is free to depend on
// internal/value and internal/ast without a cycle back here.
type PolyglotRunner interface {
	Run(ctx context.Context, language string, code string, bindings map[string]value.Value) (value.Value, error)
}

// GroupRunner dispatches a maximal run of independent polyglot
// statements concurrently. Reads/Writes name the variables each task
// touches, in source order; Exec re-runs exactly the one statement the
// task was built from, against an isolated snapshot environment.
type GroupRunner interface {
	// RunGroup snapshots env per task.Reads, runs each task's Exec
	// concurrently against its own isolated environment, and returns once
	// every task has completed or one has failed.
	RunGroup(ctx context.Context, env *value.Environment, tasks []Task) error
}

// Task is one schedulable unit handed to a GroupRunner: the variable
// names it reads and writes, and the closure that actually evaluates it
// against an isolated environment.
type Task struct {
	Reads  []string
	Writes []string
	Exec   func(env *value.Environment) error
}

// sigKind tags a non-local control-flow signal unwinding through
// statement execution. return/break/continue never escape past their
// natural boundary — return stops at the enclosing call, break/continue
// stop at the enclosing loop.
type sigKind int

const (
	sigNone sigKind = iota
	sigReturn
	sigBreak
	sigContinue
)

type signal struct {
	kind  sigKind
	value value.Value
}

// Config bundles the collaborators an Evaluator is wired against. All
// fields are optional: a nil GC disables allocation tracking, a nil
// Polyglot causes a PolyglotBlock to raise PolyglotError instead of
// executing, and a nil Groups runs polyglot statements one at a time.
type Config struct {
	GC           *gc.Collector
	Out          io.Writer
	Polyglot     PolyglotRunner
	Groups       GroupRunner
	MaxCallDepth int
	ModuleLoader ModuleLoader
}

// ModuleLoader resolves a `use path` statement to its exports table.
// internal/module implements this; kept as an interface here for the
// same reason as PolyglotRunner.
type ModuleLoader interface {
	Load(path string) (map[string]value.Value, error)
}

const defaultMaxCallDepth = 2048

// Evaluator is NAAb's execution core. One Evaluator is shared by a
// program and every module it imports; StructDefs is the single global
// namespace of struct declarations across that program, since
// `Struct<name>` resolves by name, not by module.
type Evaluator struct {
	gc         *gc.Collector
	out        io.Writer
	polyglot   PolyglotRunner
	groups     GroupRunner
	modules    ModuleLoader
	structDefs map[string]*value.StructDef

	callDepth    int
	maxCallDepth int
	callStack    naaberr.StackTrace
}

func New(cfg Config) *Evaluator {
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	maxDepth := cfg.MaxCallDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxCallDepth
	}
	e := &Evaluator{
		gc:           cfg.GC,
		out:          out,
		polyglot:     cfg.Polyglot,
		groups:       cfg.Groups,
		modules:      cfg.ModuleLoader,
		structDefs:   make(map[string]*value.StructDef),
		maxCallDepth: maxDepth,
	}
	return e
}

// StructDefs exposes the evaluator's struct namespace so internal/rtype
// can resolve generic specializations by name and so internal/module can
// merge an imported module's exported struct declarations into it.
func (e *Evaluator) StructDefs() map[string]*value.StructDef { return e.structDefs }

// StructDefMatches implements rtype.StructResolver against the live
// specialization cache, so `Struct<Pair>` matches a `Pair_int_string`
// instance produced by generic instantiation.
func (e *Evaluator) StructDefMatches(instanceDefName, declaredName string) bool {
	if instanceDefName == declaredName {
		return true
	}
	if def, ok := e.structDefs[declaredName]; ok {
		specialized := def.Specialize(splitSuffix(instanceDefName, def.Name), nil)
		return specialized.Name == instanceDefName
	}
	return len(instanceDefName) > len(declaredName) &&
		instanceDefName[:len(declaredName)+1] == declaredName+"_"
}

func splitSuffix(instanceName, base string) []string {
	if len(instanceName) <= len(base)+1 {
		return nil
	}
	return []string{instanceName[len(base)+1:]}
}

// Run evaluates a whole program in env and returns the value of its
// final expression statement, or Null. A program's result is its last
// top-level expression, mirroring a REPL's "last value wins".
func (e *Evaluator) Run(ctx context.Context, prog *ast.Program, env *value.Environment) (value.Value, error) {
	if e.gc != nil {
		e.gc.AddRoot(func() []value.Value { return snapshotEnv(env) })
	}

	e.hoist(prog.Statements, env)

	var last value.Value = value.NullValue
	for _, stmt := range prog.Statements {
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			v, err := e.evalExpr(ctx, es.Expression, env)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		sig, err := e.execStmt(ctx, stmt, env)
		if err != nil {
			return nil, err
		}
		if sig != nil && sig.kind != sigNone {
			return nil, naaberr.New(naaberr.TypeInternalError, stmt.Pos(), "%s outside of its enclosing construct", sigName(sig.kind))
		}
	}
	return last, nil
}

func sigName(k sigKind) string {
	switch k {
	case sigReturn:
		return "return"
	case sigBreak:
		return "break"
	case sigContinue:
		return "continue"
	default:
		return "signal"
	}
}

// snapshotEnv walks the full scope chain from env down to the root,
// collecting every live binding as a GC root: the current environment
// spine and globals.
func snapshotEnv(env *value.Environment) []value.Value {
	var out []value.Value
	for e := env; e != nil; e = e.Outer() {
		e.Range(func(_ string, v value.Value) bool {
			out = append(out, v)
			return true
		})
	}
	return out
}

// hoist pre-binds every FunctionDecl and StructDecl in stmts before the
// block's statements run in order, so mutually recursive functions and
// forward-referenced struct types resolve regardless of declaration
// order within the same block: functions may reference functions
// declared later in the same scope.
func (e *Evaluator) hoist(stmts []ast.Statement, env *value.Environment) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDecl:
			e.defineFunction(s, env)
		case *ast.StructDecl:
			e.defineStruct(s)
		case *ast.ExportStatement:
			switch inner := s.Decl.(type) {
			case *ast.FunctionDecl:
				e.defineFunction(inner, env)
			case *ast.StructDecl:
				e.defineStruct(inner)
			}
		}
	}
}

func (e *Evaluator) defineFunction(decl *ast.FunctionDecl, env *value.Environment) {
	fn := &value.Function{
		Name:          decl.Name,
		Params:        decl.Params,
		ReturnType:    decl.ReturnType,
		GenericParams: decl.GenericParams,
		Body:          decl.Body,
		Env:           env,
	}
	e.register(fn)
	env.Define(decl.Name, fn)
}

func (e *Evaluator) defineStruct(decl *ast.StructDecl) {
	fields := make([]value.FieldDef, len(decl.Fields))
	generics := toSet(decl.GenericParams)
	for i, f := range decl.Fields {
		fields[i] = value.FieldDef{
			Name:       f.Name,
			Type:       rtype.Resolve(f.Type, generics),
			HasDefault: f.Default != nil,
			Default:    f.Default,
		}
	}
	e.structDefs[decl.Name] = value.NewStructDef(decl.Name, fields, decl.GenericParams)
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// register tells the GC about a freshly allocated heap object and runs
// a threshold check.
func (e *Evaluator) register(obj value.GCObject) {
	if e.gc == nil {
		return
	}
	e.gc.Register(obj)
	e.gc.MaybeCollect()
}

func raiseInternal(pos token.Position, format string, args ...any) error {
	return naaberr.New(naaberr.TypeInternalError, pos, format, args...)
}
