package eval

import (
	"context"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/rtype"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// execStmt runs one statement, returning a non-nil signal only when
// control flow unwinds past this statement (return/break/continue), and
// a non-nil error only for a raised NaabError.
func (e *Evaluator) execStmt(ctx context.Context, stmt ast.Statement, env *value.Environment) (*signal, error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		return nil, e.execLet(ctx, s, env)
	case *ast.AssignStatement:
		return nil, e.execAssign(ctx, s, env)
	case *ast.IndexAssignStatement:
		return nil, e.execIndexAssign(ctx, s, env)
	case *ast.MemberAssignStatement:
		return nil, e.execMemberAssign(ctx, s, env)
	case *ast.ExpressionStatement:
		_, err := e.evalExpr(ctx, s.Expression, env)
		return nil, err
	case *ast.BlockStatement:
		return e.execBlock(ctx, s, value.NewEnclosedEnvironment(env))
	case *ast.IfStatement:
		return e.execIf(ctx, s, env)
	case *ast.WhileStatement:
		return e.execWhile(ctx, s, env)
	case *ast.ForInStatement:
		return e.execForIn(ctx, s, env)
	case *ast.BreakStatement:
		return &signal{kind: sigBreak}, nil
	case *ast.ContinueStatement:
		return &signal{kind: sigContinue}, nil
	case *ast.ReturnStatement:
		return e.execReturn(ctx, s, env)
	case *ast.ThrowStatement:
		return nil, e.execThrow(ctx, s, env)
	case *ast.TryStatement:
		return e.execTry(ctx, s, env)
	case *ast.FunctionDecl:
		// Already bound by hoist; a nested re-declaration rebinds, matching
		// `let`'s overwrite-in-scope semantics.
		e.defineFunction(s, env)
		return nil, nil
	case *ast.StructDecl:
		e.defineStruct(s)
		return nil, nil
	case *ast.UseStatement:
		return nil, e.execUse(s, env)
	case *ast.ExportStatement:
		return e.execStmt(ctx, s.Decl, env)
	default:
		return nil, raiseInternal(stmt.Pos(), "unhandled statement type %T", stmt)
	}
}

// execBlock runs a block's statements in env, which the caller must
// already have pushed as a fresh enclosed scope: every block introduces
// its own scope.
func (e *Evaluator) execBlock(ctx context.Context, block *ast.BlockStatement, env *value.Environment) (*signal, error) {
	e.hoist(block.Statements, env)

	stmts := block.Statements
	for i := 0; i < len(stmts); {
		if err := ctx.Err(); err != nil {
			return nil, naaberr.New(naaberr.TypeTimeoutError, stmts[i].Pos(), "execution cancelled: %v", err)
		}

		if run := e.polyglotRun(stmts[i:]); len(run) >= 2 && e.groups != nil {
			if err := e.execPolyglotRun(ctx, run, env); err != nil {
				return nil, err
			}
			i += len(run)
			continue
		}

		sig, err := e.execStmt(ctx, stmts[i], env)
		if err != nil {
			return nil, err
		}
		if sig != nil && sig.kind != sigNone {
			return sig, nil
		}
		i++
	}
	return nil, nil
}

func (e *Evaluator) execLet(ctx context.Context, s *ast.LetStatement, env *value.Environment) error {
	v, err := e.evalExpr(ctx, s.Value, env)
	if err != nil {
		return err
	}
	if s.Type != nil {
		t := rtype.Resolve(s.Type, nil)
		if !rtype.MatchesWithResolver(v, t, e) {
			return naaberr.New(naaberr.TypeTypeError, s.Position, "cannot assign %s to %s (declared type %s)", value.TypeName(v), s.Name, t.String())
		}
	}
	env.Define(s.Name, v)
	return nil
}

func (e *Evaluator) execAssign(ctx context.Context, s *ast.AssignStatement, env *value.Environment) error {
	v, err := e.evalExpr(ctx, s.Value, env)
	if err != nil {
		return err
	}
	if !env.Has(s.Name) {
		return naaberr.New(naaberr.TypeNameError, s.Position, "undefined variable: %s", s.Name)
	}
	if assignErr := env.Assign(s.Name, v); assignErr != nil {
		return naaberr.New(naaberr.TypeNameError, s.Position, "%v", assignErr)
	}
	return nil
}

func (e *Evaluator) execIndexAssign(ctx context.Context, s *ast.IndexAssignStatement, env *value.Environment) error {
	target, err := e.evalExpr(ctx, s.Target, env)
	if err != nil {
		return err
	}
	idx, err := e.evalExpr(ctx, s.Index, env)
	if err != nil {
		return err
	}
	val, err := e.evalExpr(ctx, s.Value, env)
	if err != nil {
		return err
	}
	if err := value.SetIndex(target, idx, val); err != nil {
		return indexErrToNaab(err, s.Position)
	}
	return nil
}

func (e *Evaluator) execMemberAssign(ctx context.Context, s *ast.MemberAssignStatement, env *value.Environment) error {
	target, err := e.evalExpr(ctx, s.Target, env)
	if err != nil {
		return err
	}
	val, err := e.evalExpr(ctx, s.Value, env)
	if err != nil {
		return err
	}
	st, ok := target.(*value.Struct)
	if !ok {
		return naaberr.New(naaberr.TypeTypeError, s.Position, "cannot set field %s on %s", s.Field, value.TypeName(target))
	}
	if st.Def != nil {
		if idx := st.Def.FieldIndex(s.Field); idx >= 0 {
			if ft, ok := st.Def.Fields[idx].Type.(*rtype.Type); ok {
				if !rtype.MatchesWithResolver(val, ft, e) {
					return naaberr.New(naaberr.TypeTypeError, s.Position, "cannot assign %s to field %s.%s (declared type %s)", value.TypeName(val), st.Def.Name, s.Field, ft.String())
				}
			}
		}
	}
	if !st.Set(s.Field, val) {
		return naaberr.New(naaberr.TypeKeyError, s.Position, "unknown field %s on %s", s.Field, value.TypeName(target))
	}
	return nil
}

func (e *Evaluator) execIf(ctx context.Context, s *ast.IfStatement, env *value.Environment) (*signal, error) {
	cond, err := e.evalExpr(ctx, s.Condition, env)
	if err != nil {
		return nil, err
	}
	if value.IsTruthy(cond) {
		return e.execBlock(ctx, s.Then, value.NewEnclosedEnvironment(env))
	}
	switch elseBranch := s.Else.(type) {
	case nil:
		return nil, nil
	case *ast.BlockStatement:
		return e.execBlock(ctx, elseBranch, value.NewEnclosedEnvironment(env))
	default:
		return e.execStmt(ctx, s.Else, env)
	}
}

func (e *Evaluator) execWhile(ctx context.Context, s *ast.WhileStatement, env *value.Environment) (*signal, error) {
	for {
		cond, err := e.evalExpr(ctx, s.Condition, env)
		if err != nil {
			return nil, err
		}
		if !value.IsTruthy(cond) {
			return nil, nil
		}
		sig, err := e.execBlock(ctx, s.Body, value.NewEnclosedEnvironment(env))
		if err != nil {
			return nil, err
		}
		if sig != nil {
			switch sig.kind {
			case sigBreak:
				return nil, nil
			case sigContinue:
				continue
			default:
				return sig, nil
			}
		}
	}
}

func (e *Evaluator) execForIn(ctx context.Context, s *ast.ForInStatement, env *value.Environment) (*signal, error) {
	iterable, err := e.evalExpr(ctx, s.Iterable, env)
	if err != nil {
		return nil, err
	}

	var items []value.Value
	switch it := iterable.(type) {
	case value.Range:
		it.Iterate(func(i int64) bool {
			items = append(items, value.Int{Value: i})
			return true
		})
	case *value.List:
		items = it.Elements
	case *value.Dict:
		it.Range(func(k, _ value.Value) bool {
			items = append(items, k)
			return true
		})
	case value.String:
		for _, r := range it.Value {
			items = append(items, value.String{Value: string(r)})
		}
	default:
		return nil, naaberr.New(naaberr.TypeTypeError, s.Position, "cannot iterate over %s", value.TypeName(iterable))
	}

	for _, item := range items {
		loopEnv := value.NewEnclosedEnvironment(env)
		loopEnv.Define(s.Name, item)
		sig, err := e.execBlock(ctx, s.Body, loopEnv)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			switch sig.kind {
			case sigBreak:
				return nil, nil
			case sigContinue:
				continue
			default:
				return sig, nil
			}
		}
	}
	return nil, nil
}

func (e *Evaluator) execReturn(ctx context.Context, s *ast.ReturnStatement, env *value.Environment) (*signal, error) {
	if s.Value == nil {
		return &signal{kind: sigReturn, value: value.NullValue}, nil
	}
	v, err := e.evalExpr(ctx, s.Value, env)
	if err != nil {
		return nil, err
	}
	return &signal{kind: sigReturn, value: v}, nil
}

func (e *Evaluator) execThrow(ctx context.Context, s *ast.ThrowStatement, env *value.Environment) error {
	v, err := e.evalExpr(ctx, s.Value, env)
	if err != nil {
		return err
	}
	return naaberr.WrapThrown(v, s.Position)
}

// execTry implements try/catch/finally: an exception raised while
// finally itself runs replaces whatever the body or catch produced,
// without chaining to it.
func (e *Evaluator) execTry(ctx context.Context, s *ast.TryStatement, env *value.Environment) (*signal, error) {
	sig, err := e.execBlock(ctx, s.Body, value.NewEnclosedEnvironment(env))

	if ne, ok := asNaabError(err); ok && s.Catch != nil {
		catchEnv := value.NewEnclosedEnvironment(env)
		catchEnv.Define(s.Catch.Name, ne.ToValue())
		sig, err = e.execBlock(ctx, s.Catch.Body, catchEnv)
	}

	if s.Finally != nil {
		finallySig, finallyErr := e.execBlock(ctx, s.Finally, value.NewEnclosedEnvironment(env))
		if finallyErr != nil || (finallySig != nil && finallySig.kind != sigNone) {
			return finallySig, finallyErr
		}
	}

	return sig, err
}

func asNaabError(err error) (*naaberr.NaabError, bool) {
	if err == nil {
		return nil, false
	}
	ne, ok := err.(*naaberr.NaabError)
	return ne, ok
}

// execUse implements `use path [as alias]`: resolve the module's
// exports table and bind it into env as a Dict, named by the alias or
// the path's leaf component.
func (e *Evaluator) execUse(s *ast.UseStatement, env *value.Environment) error {
	if e.modules == nil {
		return naaberr.New(naaberr.TypeModuleError, s.Position, "no module loader configured for `use %s`", s.Path)
	}
	exports, err := e.modules.Load(s.Path)
	if err != nil {
		return naaberr.New(naaberr.TypeModuleError, s.Position, "%v", err)
	}
	name := s.Alias
	if name == "" {
		name = leafName(s.Path)
	}
	d := value.NewDict()
	for k, v := range exports {
		d.Set(value.String{Value: k}, v)
	}
	e.register(d)
	env.Define(name, d)
	return nil
}

func leafName(path string) string {
	last := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			last = path[i+1:]
			break
		}
	}
	return last
}
