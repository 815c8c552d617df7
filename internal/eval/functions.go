package eval

import (
	"context"

	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/rtype"
	"github.com/b-macker/NAAb-sub013/internal/token"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// callValue dispatches a call to whatever callee evaluated to: a user
// Function (push a call frame, bind arguments, run the body, unwrap its
// return signal) or a Builtin (call straight through). Any other kind
// raises TypeError: calling a non-function value is never valid.
func (e *Evaluator) callValue(ctx context.Context, callee value.Value, args []value.Value, pos token.Position) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.Function:
		return e.applyFunction(ctx, fn, args, pos)
	case *value.Builtin:
		v, err := fn.Fn(args)
		if err != nil {
			if ne, ok := err.(*naaberr.NaabError); ok {
				return nil, ne
			}
			return nil, naaberr.New(naaberr.TypeUserError, pos, "%v", err)
		}
		return v, nil
	default:
		return nil, naaberr.New(naaberr.TypeTypeError, pos, "cannot call non-function value of type %s", value.TypeName(callee))
	}
}

// applyFunction implements NAAb's call semantics: extend the closure's
// captured environment with parameters bound to arguments (arity and
// per-parameter type checked against rtype), run the body, and unwrap a
// `return` signal into the function's result, validated against its
// declared return type.
func (e *Evaluator) applyFunction(ctx context.Context, fn *value.Function, args []value.Value, pos token.Position) (value.Value, error) {
	e.callDepth++
	defer func() { e.callDepth-- }()
	if e.callDepth > e.maxCallDepth {
		return nil, naaberr.New(naaberr.TypeInternalError, pos, "call stack exceeded maximum depth %d", e.maxCallDepth)
	}

	if len(args) != len(fn.Params) {
		name := fn.Name
		if name == "" {
			name = "<lambda>"
		}
		return nil, naaberr.New(naaberr.TypeArityError, pos, "%s expects %d argument(s), got %d", name, len(fn.Params), len(args))
	}

	generics := toSet(fn.GenericParams)
	callEnv := value.NewEnclosedEnvironment(fn.Env)

	for i, param := range fn.Params {
		if param.Type != nil {
			t := rtype.Resolve(param.Type, generics)
			if !rtype.MatchesWithResolver(args[i], t, e) {
				return nil, naaberr.New(naaberr.TypeTypeError, pos, "argument %d (%s) of %s: expected %s, got %s", i+1, param.Name, displayName(fn), t.String(), value.TypeName(args[i]))
			}
		}
		callEnv.Define(param.Name, args[i])
	}

	frame := naaberr.StackFrame{FunctionName: displayName(fn), Pos: pos}
	e.callStack = append(e.callStack, frame)
	defer func() { e.callStack = e.callStack[:len(e.callStack)-1] }()

	sig, err := e.execBlock(ctx, fn.Body, callEnv)
	if err != nil {
		if ne, ok := err.(*naaberr.NaabError); ok {
			return nil, ne.WithFrame(frame)
		}
		return nil, err
	}

	var result value.Value = value.NullValue
	if sig != nil && sig.kind == sigReturn {
		result = sig.value
	}

	if fn.ReturnType != nil {
		t := rtype.Resolve(fn.ReturnType, generics)
		if !rtype.MatchesWithResolver(result, t, e) {
			return nil, naaberr.New(naaberr.TypeTypeError, pos, "%s: expected return type %s, got %s", displayName(fn), t.String(), value.TypeName(result))
		}
	}
	return result, nil
}

func displayName(fn *value.Function) string {
	if fn.Name == "" {
		return "<lambda>"
	}
	return fn.Name
}
