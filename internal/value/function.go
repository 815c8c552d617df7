package value

import (
	"fmt"
	"strings"

	"github.com/b-macker/NAAb-sub013/internal/ast"
)

// Function is a closure: declared parameters, declared return type, the
// body AST, and the captured defining environment. Equality on functions
// is identity.
type Function struct {
	Name          string // "" for lambdas
	Params        []ast.Param
	ReturnType    ast.TypeExpr // nil means undeclared: the result is not type-checked
	GenericParams []string
	Body          *ast.BlockStatement
	Env           *Environment

	// specializations caches per-call generic signatures keyed by the
	// inferred type-argument tuple.
	specializations map[string][]ast.TypeExpr
}

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "<lambda>"
	}
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.Type != nil {
			parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type.String())
		} else {
			parts[i] = p.Name
		}
	}
	return fmt.Sprintf("fn %s(%s)", name, strings.Join(parts, ", "))
}

// Children exposes the captured environment's current bindings to the GC's
// mark phase, so values reachable only through a live closure are kept
// alive.
func (f *Function) Children() []Value {
	if f.Env == nil {
		return nil
	}
	var out []Value
	f.Env.Range(func(_ string, v Value) bool {
		out = append(out, v)
		return true
	})
	return out
}

// CachedSpecialization returns a previously inferred type-argument tuple
// for this call signature, if any.
func (f *Function) CachedSpecialization(key string) ([]ast.TypeExpr, bool) {
	if f.specializations == nil {
		return nil, false
	}
	args, ok := f.specializations[key]
	return args, ok
}

// CacheSpecialization records the inferred type-argument tuple for key.
func (f *Function) CacheSpecialization(key string, args []ast.TypeExpr) {
	if f.specializations == nil {
		f.specializations = make(map[string][]ast.TypeExpr)
	}
	f.specializations[key] = args
}

// Builtin is a host-implemented function in the evaluator's lexical
// environment: print, typeof, gc_collect, and module references injected
// by the module loader. It implements Value so it can be bound and
// called exactly like a user Function.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (b *Builtin) Kind() Kind     { return KindFunction }
func (b *Builtin) String() string { return fmt.Sprintf("<builtin %s>", b.Name) }

