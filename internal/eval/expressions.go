package eval

import (
	"context"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/rtype"
	"github.com/b-macker/NAAb-sub013/internal/token"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

func (e *Evaluator) evalExpr(ctx context.Context, expr ast.Expression, env *value.Environment) (value.Value, error) {
	switch ex := expr.(type) {
	case *ast.IntLiteral:
		return value.Int{Value: ex.Value}, nil
	case *ast.FloatLiteral:
		return value.Float{Value: ex.Value}, nil
	case *ast.BoolLiteral:
		return value.Bool{Value: ex.Value}, nil
	case *ast.StringLiteral:
		return value.String{Value: ex.Value}, nil
	case *ast.NullLiteral:
		return value.NullValue, nil
	case *ast.Identifier:
		return e.evalIdentifier(ex, env)
	case *ast.ListLiteral:
		return e.evalListLiteral(ctx, ex, env)
	case *ast.DictLiteral:
		return e.evalDictLiteral(ctx, ex, env)
	case *ast.StructLiteral:
		return e.evalStructLiteral(ctx, ex, env)
	case *ast.RangeExpr:
		return e.evalRangeExpr(ctx, ex, env)
	case *ast.LambdaLiteral:
		fn := &value.Function{
			Params:     ex.Params,
			ReturnType: ex.ReturnType,
			Body:       ex.Body,
			Env:        env,
		}
		e.register(fn)
		return fn, nil
	case *ast.PrefixExpr:
		return e.evalPrefixExpr(ctx, ex, env)
	case *ast.InfixExpr:
		return e.evalInfixExpr(ctx, ex, env)
	case *ast.PipelineExpr:
		return e.evalPipelineExpr(ctx, ex, env)
	case *ast.CallExpr:
		return e.evalCallExpr(ctx, ex, env)
	case *ast.IndexExpr:
		return e.evalIndexExpr(ctx, ex, env)
	case *ast.MemberExpr:
		return e.evalMemberExpr(ctx, ex, env)
	case *ast.PolyglotBlock:
		return e.evalPolyglotBlock(ctx, ex, env)
	default:
		return nil, raiseInternal(expr.Pos(), "unhandled expression type %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(id *ast.Identifier, env *value.Environment) (value.Value, error) {
	if v, ok := env.Lookup(id.Name); ok {
		return v, nil
	}
	return nil, naaberr.New(naaberr.TypeNameError, id.Position, "undefined variable: %s", id.Name)
}

func (e *Evaluator) evalListLiteral(ctx context.Context, n *ast.ListLiteral, env *value.Environment) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.evalExpr(ctx, el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	l := value.NewList(elems...)
	e.register(l)
	return l, nil
}

func (e *Evaluator) evalDictLiteral(ctx context.Context, n *ast.DictLiteral, env *value.Environment) (value.Value, error) {
	d := value.NewDict()
	for _, entry := range n.Entries {
		k, err := e.evalExpr(ctx, entry.Key, env)
		if err != nil {
			return nil, err
		}
		v, err := e.evalExpr(ctx, entry.Value, env)
		if err != nil {
			return nil, err
		}
		if !d.Set(k, v) {
			return nil, naaberr.New(naaberr.TypeTypeError, n.Position, "unsupported dict key type %s", value.TypeName(k))
		}
	}
	e.register(d)
	return d, nil
}

// evalStructLiteral implements `new Name { f: v, ... }` (`new` is
// mandatory), resolving generics via the type arguments given explicitly
// or inferred from field-initializer expressions, applying field
// defaults, and validating every field against its declared type.
func (e *Evaluator) evalStructLiteral(ctx context.Context, n *ast.StructLiteral, env *value.Environment) (value.Value, error) {
	def, ok := e.structDefs[n.Name]
	if !ok {
		return nil, naaberr.New(naaberr.TypeNameError, n.Position, "undefined struct: %s", n.Name)
	}

	values := make([]value.Value, len(def.Fields))
	set := make([]bool, len(def.Fields))
	for _, fi := range n.Fields {
		idx := def.FieldIndex(fi.Name)
		if idx < 0 {
			return nil, naaberr.New(naaberr.TypeKeyError, n.Position, "unknown field %s on %s", fi.Name, n.Name)
		}
		v, err := e.evalExpr(ctx, fi.Value, env)
		if err != nil {
			return nil, err
		}
		values[idx] = v
		set[idx] = true
	}

	activeDef := def
	if len(def.GenericParams) > 0 {
		typeArgNames := make([]string, 0, len(def.GenericParams))
		if len(n.TypeArgs) > 0 {
			for _, ta := range n.TypeArgs {
				typeArgNames = append(typeArgNames, ta.String())
			}
		} else {
			for i := range def.Fields {
				if set[i] {
					typeArgNames = append(typeArgNames, value.TypeName(values[i]))
				}
			}
		}
		fieldTypes := make([]any, len(def.Fields))
		for i := range fieldTypes {
			if i < len(typeArgNames) {
				fieldTypes[i] = typeFromName(typeArgNames[i])
			}
		}
		activeDef = def.Specialize(typeArgNames, fieldTypes)
	}

	for i, f := range activeDef.Fields {
		if !set[i] {
			if f.HasDefault && f.Default != nil {
				v, err := e.evalExpr(ctx, f.Default, env)
				if err != nil {
					return nil, err
				}
				values[i] = v
			} else {
				values[i] = value.NullValue
			}
			continue
		}
		if t, ok := f.Type.(*rtype.Type); ok {
			if !rtype.MatchesWithResolver(values[i], t, e) {
				return nil, naaberr.New(naaberr.TypeTypeError, n.Position, "cannot assign %s to field %s.%s (declared type %s)", value.TypeName(values[i]), n.Name, f.Name, t.String())
			}
		}
	}

	inst := value.NewStruct(activeDef, values)
	e.register(inst)
	return inst, nil
}

func (e *Evaluator) evalRangeExpr(ctx context.Context, n *ast.RangeExpr, env *value.Environment) (value.Value, error) {
	start, err := e.evalExpr(ctx, n.Start, env)
	if err != nil {
		return nil, err
	}
	end, err := e.evalExpr(ctx, n.End, env)
	if err != nil {
		return nil, err
	}
	si, ok := start.(value.Int)
	if !ok {
		return nil, naaberr.New(naaberr.TypeTypeError, n.Position, "range bounds must be int, got %s", value.TypeName(start))
	}
	ei, ok := end.(value.Int)
	if !ok {
		return nil, naaberr.New(naaberr.TypeTypeError, n.Position, "range bounds must be int, got %s", value.TypeName(end))
	}
	return value.Range{Start: si.Value, End: ei.Value, Inclusive: n.Inclusive}, nil
}

func (e *Evaluator) evalPrefixExpr(ctx context.Context, n *ast.PrefixExpr, env *value.Environment) (value.Value, error) {
	right, err := e.evalExpr(ctx, n.Right, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "-":
		switch r := right.(type) {
		case value.Int:
			return value.Int{Value: -r.Value}, nil
		case value.Float:
			return value.Float{Value: -r.Value}, nil
		}
		return nil, naaberr.New(naaberr.TypeTypeError, n.Position, "cannot negate %s", value.TypeName(right))
	case "!":
		return value.Bool{Value: !value.IsTruthy(right)}, nil
	default:
		return nil, raiseInternal(n.Position, "unknown prefix operator %s", n.Operator)
	}
}

func (e *Evaluator) evalInfixExpr(ctx context.Context, n *ast.InfixExpr, env *value.Environment) (value.Value, error) {
	if n.Operator == "&&" {
		left, err := e.evalExpr(ctx, n.Left, env)
		if err != nil {
			return nil, err
		}
		if !value.IsTruthy(left) {
			return value.Bool{Value: false}, nil
		}
		right, err := e.evalExpr(ctx, n.Right, env)
		if err != nil {
			return nil, err
		}
		return value.Bool{Value: value.IsTruthy(right)}, nil
	}
	if n.Operator == "||" {
		left, err := e.evalExpr(ctx, n.Left, env)
		if err != nil {
			return nil, err
		}
		if value.IsTruthy(left) {
			return value.Bool{Value: true}, nil
		}
		right, err := e.evalExpr(ctx, n.Right, env)
		if err != nil {
			return nil, err
		}
		return value.Bool{Value: value.IsTruthy(right)}, nil
	}

	left, err := e.evalExpr(ctx, n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ctx, n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+":
		v, err := value.Add(left, right)
		return v, opErrToNaab(err, n.Position)
	case "-":
		v, err := value.Sub(left, right)
		return v, opErrToNaab(err, n.Position)
	case "*":
		v, err := value.Mul(left, right)
		return v, opErrToNaab(err, n.Position)
	case "/":
		v, err := value.Div(left, right)
		return v, opErrToNaab(err, n.Position)
	case "%":
		v, err := value.Mod(left, right)
		return v, opErrToNaab(err, n.Position)
	case "==":
		return value.Bool{Value: value.Equal(left, right)}, nil
	case "!=":
		return value.Bool{Value: !value.Equal(left, right)}, nil
	case "<", "<=", ">", ">=":
		cmp, err := value.Compare(left, right)
		if err != nil {
			return nil, opErrToNaab(err, n.Position)
		}
		switch n.Operator {
		case "<":
			return value.Bool{Value: cmp < 0}, nil
		case "<=":
			return value.Bool{Value: cmp <= 0}, nil
		case ">":
			return value.Bool{Value: cmp > 0}, nil
		default:
			return value.Bool{Value: cmp >= 0}, nil
		}
	default:
		return nil, raiseInternal(n.Position, "unknown infix operator %s", n.Operator)
	}
}

// evalPipelineExpr implements `x |> f(args)` as sugar for `f(x,
// args...)`: x is evaluated once and prepended to the call's argument
// list, preserving left-to-right evaluation order. This desugaring runs
// inline through callValue rather than building a temporary CallExpr, so
// the pipeline's left-hand value is evaluated exactly once regardless of
// how many times the callee's parameter is referenced in its body.
func (e *Evaluator) evalPipelineExpr(ctx context.Context, n *ast.PipelineExpr, env *value.Environment) (value.Value, error) {
	piped, err := e.evalExpr(ctx, n.Left, env)
	if err != nil {
		return nil, err
	}
	callee, err := e.evalExpr(ctx, n.Call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, 0, len(n.Call.Args)+1)
	args = append(args, piped)
	for _, a := range n.Call.Args {
		v, err := e.evalExpr(ctx, a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return e.callValue(ctx, callee, args, n.Position)
}

func (e *Evaluator) evalCallExpr(ctx context.Context, n *ast.CallExpr, env *value.Environment) (value.Value, error) {
	callee, err := e.evalExpr(ctx, n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpr(ctx, a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return e.callValue(ctx, callee, args, n.Position)
}

func (e *Evaluator) evalIndexExpr(ctx context.Context, n *ast.IndexExpr, env *value.Environment) (value.Value, error) {
	target, err := e.evalExpr(ctx, n.Left, env)
	if err != nil {
		return nil, err
	}
	idx, err := e.evalExpr(ctx, n.Index, env)
	if err != nil {
		return nil, err
	}
	if r, ok := target.(value.Range); ok {
		i, ok := idx.(value.Int)
		if !ok {
			return nil, naaberr.New(naaberr.TypeTypeError, n.Position, "range index must be int")
		}
		pos := r.Start + i.Value
		if (r.Inclusive && pos > r.End) || (!r.Inclusive && pos >= r.End) || pos < r.Start {
			return nil, naaberr.New(naaberr.TypeRangeError, n.Position, "range index %d out of bounds", i.Value)
		}
		return value.Int{Value: pos}, nil
	}
	v, err := value.Index(target, idx)
	if err != nil {
		return nil, indexErrToNaab(err, n.Position)
	}
	return v, nil
}

func (e *Evaluator) evalMemberExpr(ctx context.Context, n *ast.MemberExpr, env *value.Environment) (value.Value, error) {
	target, err := e.evalExpr(ctx, n.Left, env)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *value.Struct:
		if v, ok := t.Get(n.Name); ok {
			return v, nil
		}
		return nil, naaberr.New(naaberr.TypeKeyError, n.Position, "unknown field %s on %s", n.Name, value.TypeName(target))
	case *value.Dict:
		if v, ok := t.Get(value.String{Value: n.Name}); ok {
			return v, nil
		}
		return nil, naaberr.New(naaberr.TypeKeyError, n.Position, "key not found: %s", n.Name)
	default:
		return nil, naaberr.New(naaberr.TypeTypeError, n.Position, "cannot access field %s on %s", n.Name, value.TypeName(target))
	}
}

// typeFromName maps a type's canonical string form back to a resolved
// rtype.Type for generic specialization caching, where only the name
// (not a full ast.TypeExpr) is available at the instantiation site.
func typeFromName(name string) *rtype.Type {
	switch name {
	case "int":
		return rtype.IntType
	case "float":
		return rtype.FloatType
	case "string":
		return rtype.StringType
	case "bool":
		return rtype.BoolType
	case "any", "Any":
		return rtype.AnyType
	default:
		return rtype.StructNamed(name)
	}
}

func opErrToNaab(err error, pos token.Position) error {
	if err == nil {
		return nil
	}
	if err == value.DivisionByZero {
		return naaberr.New(naaberr.TypeDivisionByZero, pos, "%s", err.Error())
	}
	if opErr, ok := err.(*value.OpError); ok {
		return naaberr.New(naaberr.TypeTypeError, pos, "%s", opErr.Error())
	}
	return naaberr.New(naaberr.TypeTypeError, pos, "%s", err.Error())
}

func indexErrToNaab(err error, pos token.Position) error {
	if err == nil {
		return nil
	}
	idxErr, ok := err.(*value.IndexError)
	if !ok {
		return naaberr.New(naaberr.TypeTypeError, pos, "%s", err.Error())
	}
	switch idxErr.Kind {
	case value.IndexOutOfRange:
		return naaberr.New(naaberr.TypeRangeError, pos, "%s", idxErr.Msg)
	case value.IndexKeyMissing:
		return naaberr.New(naaberr.TypeKeyError, pos, "%s", idxErr.Msg)
	default:
		return naaberr.New(naaberr.TypeTypeError, pos, "%s", idxErr.Msg)
	}
}
