package eval

import (
	"context"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// evalPolyglotBlock dispatches a single inline foreign-code block to
// whatever PolyglotRunner the host wired in. A program that never
// configures one still parses and evaluates everything except polyglot
// blocks, which raise PolyglotError on first use.
func (e *Evaluator) evalPolyglotBlock(ctx context.Context, n *ast.PolyglotBlock, env *value.Environment) (value.Value, error) {
	if e.polyglot == nil {
		return nil, naaberr.New(naaberr.TypePolyglotError, n.Position, "no polyglot runner configured for language %q", n.Language)
	}
	bindings := make(map[string]value.Value, len(n.Bindings))
	for _, name := range n.Bindings {
		v, ok := env.Lookup(name)
		if !ok {
			return nil, naaberr.New(naaberr.TypeNameError, n.Position, "undefined variable: %s", name)
		}
		bindings[name] = v
	}
	v, err := e.polyglot.Run(ctx, n.Language, n.Code, bindings)
	if err != nil {
		if ne, ok := err.(*naaberr.NaabError); ok {
			return nil, ne
		}
		return nil, naaberr.New(naaberr.TypePolyglotError, n.Position, "%v", err)
	}
	if obj, ok := v.(value.GCObject); ok {
		e.register(obj)
	}
	return v, nil
}

// polyglotBinding extracts the single target variable a statement binds
// a polyglot block's result to, and the PolyglotBlock expression itself,
// if stmt is one of the two shapes the dependency analyzer considers
// schedulable: `let x = <<lang[...]>>` or a bare `<<lang[...]>>`
// expression statement.
func polyglotBinding(stmt ast.Statement) (target string, block *ast.PolyglotBlock, ok bool) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		if pb, isBlock := s.Value.(*ast.PolyglotBlock); isBlock {
			return s.Name, pb, true
		}
	case *ast.ExpressionStatement:
		if pb, isBlock := s.Expression.(*ast.PolyglotBlock); isBlock {
			return "", pb, true
		}
	}
	return "", nil, false
}

// polyglotRun returns the maximal prefix of stmts made entirely of
// polyglot-bearing statements — a maximal run of adjacent statements
// each consisting solely of one inline block; any other statement shape
// ends the run.
func (e *Evaluator) polyglotRun(stmts []ast.Statement) []ast.Statement {
	i := 0
	for i < len(stmts) {
		if _, _, ok := polyglotBinding(stmts[i]); !ok {
			break
		}
		i++
	}
	return stmts[:i]
}

// execPolyglotRun detects RAW/WAW/WAR conflicts across the run by
// variable name, greedily groups conflict-free statements, and dispatches
// each group to the GroupRunner for concurrent execution with snapshot
// isolation; results are written back to env in source order once every
// task in the batch completes. The observable outcome must match running
// the same statements sequentially.
func (e *Evaluator) execPolyglotRun(ctx context.Context, stmts []ast.Statement, env *value.Environment) error {
	groups := groupIndependent(stmts)

	for _, group := range groups {
		if len(group) == 1 {
			_, err := e.execStmt(ctx, stmts[group[0]], env)
			if err != nil {
				return err
			}
			continue
		}

		tasks := make([]Task, len(group))
		results := make([]value.Value, len(group))
		for gi, si := range group {
			target, block, _ := polyglotBinding(stmts[si])
			idx := gi
			tasks[idx] = Task{
				Reads:  block.Bindings,
				Writes: writesOf(target),
				Exec: func(taskEnv *value.Environment) error {
					v, err := e.evalPolyglotBlock(ctx, block, taskEnv)
					if err != nil {
						return err
					}
					results[idx] = v
					return nil
				},
			}
		}
		if err := e.groups.RunGroup(ctx, env, tasks); err != nil {
			return err
		}
		for gi, si := range group {
			target, _, _ := polyglotBinding(stmts[si])
			if target != "" {
				env.Define(target, results[gi])
			}
		}
	}
	return nil
}

func writesOf(target string) []string {
	if target == "" {
		return nil
	}
	return []string{target}
}

// groupIndependent implements the greedy RAW/WAW/WAR grouping: walk
// statements in order, adding each to the current (most recently
// opened) group if it does not conflict with it (shares no variable,
// read or write, with any member already in that group), else starting
// a new group. Groups are returned, and executed, in source order, so a
// statement's group never runs before a statement it could depend on
// that preceded it.
func groupIndependent(stmts []ast.Statement) [][]int {
	type groupInfo struct {
		indices []int
		touched map[string]bool
	}
	var groups []*groupInfo

	for i, stmt := range stmts {
		target, block, _ := polyglotBinding(stmt)
		touches := make(map[string]bool, len(block.Bindings)+1)
		for _, r := range block.Bindings {
			touches[r] = true
		}
		if target != "" {
			touches[target] = true
		}

		placed := false
		if len(groups) > 0 {
			g := groups[len(groups)-1]
			conflict := false
			for name := range touches {
				if g.touched[name] {
					conflict = true
					break
				}
			}
			if !conflict {
				g.indices = append(g.indices, i)
				for name := range touches {
					g.touched[name] = true
				}
				placed = true
			}
		}
		if !placed {
			groups = append(groups, &groupInfo{indices: []int{i}, touched: touches})
		}
	}

	out := make([][]int, len(groups))
	for i, g := range groups {
		out[i] = g.indices
	}
	return out
}
