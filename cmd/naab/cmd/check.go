package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/lexer"
	"github.com/b-macker/NAAb-sub013/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse and static-check a NAAb program without evaluating it",
	Long: `Parse a NAAb program and verify its type annotations and struct
literals resolve against the program's own declarations, without
evaluating any statement.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	prog, errs := parser.New(lexer.New(string(data), filename)).ParseProgram()
	if len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Parser errors:")
		for _, msg := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		}
		return &exitCodeError{code: exitParseFailure}
	}

	c := newChecker()
	c.collectDecls(prog.Statements)
	c.checkStatements(prog.Statements)

	if len(c.errors) > 0 {
		fmt.Fprintln(os.Stderr, "Static check errors:")
		for _, msg := range c.errors {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		}
		return &exitCodeError{code: exitParseFailure}
	}

	fmt.Printf("%s: OK (%d statement(s), %d struct(s), %d function(s))\n", filename, len(prog.Statements), len(c.structs), len(c.funcs))
	return nil
}

// builtinTypeNames are the type names internal/rtype.resolveNamed
// recognizes without a user declaration.
var builtinTypeNames = map[string]bool{
	"any": true, "Any": true,
	"void": true, "Void": true,
	"int": true, "float": true, "string": true, "bool": true,
	"List": true, "Dict": true,
}

// checker performs the shallow static validation `naab check` offers:
// every named type and struct literal must resolve to a builtin, a
// generic parameter in scope, or a struct declared somewhere in the
// program. It does not infer or verify value types, since NAAb's
// annotations are checked dynamically at the boundaries the evaluator
// actually crosses (let/param/return).
type checker struct {
	structs map[string][]ast.FieldDecl
	funcs   map[string]*ast.FunctionDecl
	errors  []string
}

func newChecker() *checker {
	return &checker{structs: map[string][]ast.FieldDecl{}, funcs: map[string]*ast.FunctionDecl{}}
}

func (c *checker) collectDecls(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.StructDecl:
			c.structs[n.Name] = n.Fields
		case *ast.FunctionDecl:
			c.funcs[n.Name] = n
		case *ast.ExportStatement:
			c.collectDecls([]ast.Statement{n.Decl})
		}
	}
}

func (c *checker) errorf(pos ast.Node, format string, args ...any) {
	p := pos.Pos()
	c.errors = append(c.errors, fmt.Sprintf("%d:%d: %s", p.Line, p.Column, fmt.Sprintf(format, args...)))
}

func (c *checker) checkType(t ast.TypeExpr, generics map[string]bool) {
	if t == nil {
		return
	}
	switch n := t.(type) {
	case *ast.NamedType:
		if builtinTypeNames[n.Name] || generics[n.Name] {
			return
		}
		if _, ok := c.structs[n.Name]; !ok {
			c.errorf(n, "unresolved type `%s`", n.Name)
		}
		for _, arg := range n.TypeArgs {
			c.checkType(arg, generics)
		}
	case *ast.ListType:
		c.checkType(n.Elem, generics)
	case *ast.DictType:
		c.checkType(n.Key, generics)
		c.checkType(n.Value, generics)
	case *ast.UnionType:
		for _, m := range n.Members {
			c.checkType(m, generics)
		}
	}
}

func genericSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func (c *checker) checkStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		c.checkStatement(stmt)
	}
}

func (c *checker) checkStatement(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.LetStatement:
		c.checkType(n.Type, nil)
		c.checkExpr(n.Value, nil)
	case *ast.AssignStatement:
		c.checkExpr(n.Value, nil)
	case *ast.IndexAssignStatement:
		c.checkExpr(n.Target, nil)
		c.checkExpr(n.Index, nil)
		c.checkExpr(n.Value, nil)
	case *ast.MemberAssignStatement:
		c.checkExpr(n.Target, nil)
		c.checkExpr(n.Value, nil)
	case *ast.ExpressionStatement:
		c.checkExpr(n.Expression, nil)
	case *ast.BlockStatement:
		c.checkStatements(n.Statements)
	case *ast.IfStatement:
		c.checkExpr(n.Condition, nil)
		c.checkStatement(n.Then)
		if n.Else != nil {
			c.checkStatement(n.Else)
		}
	case *ast.WhileStatement:
		c.checkExpr(n.Condition, nil)
		c.checkStatement(n.Body)
	case *ast.ForInStatement:
		c.checkExpr(n.Iterable, nil)
		c.checkStatement(n.Body)
	case *ast.ReturnStatement:
		if n.Value != nil {
			c.checkExpr(n.Value, nil)
		}
	case *ast.ThrowStatement:
		c.checkExpr(n.Value, nil)
	case *ast.TryStatement:
		c.checkStatement(n.Body)
		if n.Catch != nil {
			c.checkStatement(n.Catch.Body)
		}
		if n.Finally != nil {
			c.checkStatement(n.Finally)
		}
	case *ast.FunctionDecl:
		generics := genericSet(n.GenericParams)
		for _, p := range n.Params {
			c.checkType(p.Type, generics)
		}
		c.checkType(n.ReturnType, generics)
		c.checkStatement(n.Body)
	case *ast.StructDecl:
		generics := genericSet(n.GenericParams)
		for _, f := range n.Fields {
			c.checkType(f.Type, generics)
			if f.Default != nil {
				c.checkExpr(f.Default, generics)
			}
		}
	case *ast.ExportStatement:
		c.checkStatement(n.Decl)
	}
}

func (c *checker) checkExpr(expr ast.Expression, generics map[string]bool) {
	switch n := expr.(type) {
	case *ast.ListLiteral:
		for _, e := range n.Elements {
			c.checkExpr(e, generics)
		}
	case *ast.DictLiteral:
		for _, e := range n.Entries {
			c.checkExpr(e.Key, generics)
			c.checkExpr(e.Value, generics)
		}
	case *ast.StructLiteral:
		fields, ok := c.structs[n.Name]
		if !ok {
			c.errorf(n, "unresolved struct `%s`", n.Name)
			return
		}
		known := make(map[string]bool, len(fields))
		for _, f := range fields {
			known[f.Name] = true
		}
		for _, init := range n.Fields {
			if !known[init.Name] {
				c.errorf(n, "struct `%s` has no field `%s`", n.Name, init.Name)
			}
			c.checkExpr(init.Value, generics)
		}
		for _, arg := range n.TypeArgs {
			c.checkType(arg, generics)
		}
	case *ast.RangeExpr:
		c.checkExpr(n.Start, generics)
		c.checkExpr(n.End, generics)
	case *ast.LambdaLiteral:
		lambdaGenerics := generics
		for _, p := range n.Params {
			c.checkType(p.Type, lambdaGenerics)
		}
		c.checkType(n.ReturnType, lambdaGenerics)
		c.checkStatement(n.Body)
	case *ast.PrefixExpr:
		c.checkExpr(n.Right, generics)
	case *ast.InfixExpr:
		c.checkExpr(n.Left, generics)
		c.checkExpr(n.Right, generics)
	case *ast.PipelineExpr:
		c.checkExpr(n.Left, generics)
		c.checkExpr(n.Call, generics)
	case *ast.CallExpr:
		c.checkExpr(n.Callee, generics)
		for _, a := range n.Args {
			c.checkExpr(a, generics)
		}
	case *ast.IndexExpr:
		c.checkExpr(n.Left, generics)
		c.checkExpr(n.Index, generics)
	case *ast.MemberExpr:
		c.checkExpr(n.Left, generics)
	}
}
