package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/lexer"
	"github.com/b-macker/NAAb-sub013/internal/parser"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse NAAb source and dump its AST",
	Long: `Parse NAAb source code and print the shape of its Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse a single
expression given on the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression given on the command line")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
	}

	filename := "<stdin>"
	if len(args) > 0 && !parseExpression {
		filename = args[0]
	} else if parseExpression {
		filename = "<eval>"
	}

	prog, errs := parser.New(lexer.New(input, filename)).ParseProgram()
	if len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Parser errors:")
		for _, msg := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		}
		return &exitCodeError{code: exitParseFailure}
	}

	fmt.Println("Abstract Syntax Tree:")
	fmt.Println("=====================")
	for i, stmt := range prog.Statements {
		fmt.Printf("[%d] ", i)
		dumpASTNode(stmt, 0)
	}
	return nil
}

func dumpASTNode(node any, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.LetStatement:
		fmt.Printf("%sLetStatement %s\n", pad, n.Name)
		dumpASTNode(n.Value, indent+1)
	case *ast.AssignStatement:
		fmt.Printf("%sAssignStatement %s\n", pad, n.Name)
		dumpASTNode(n.Value, indent+1)
	case *ast.ExpressionStatement:
		fmt.Printf("%sExpressionStatement\n", pad)
		dumpASTNode(n.Expression, indent+1)
	case *ast.BlockStatement:
		fmt.Printf("%sBlockStatement (%d statements)\n", pad, len(n.Statements))
		for _, s := range n.Statements {
			dumpASTNode(s, indent+1)
		}
	case *ast.IfStatement:
		fmt.Printf("%sIfStatement\n", pad)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Then, indent+1)
		if n.Else != nil {
			dumpASTNode(n.Else, indent+1)
		}
	case *ast.WhileStatement:
		fmt.Printf("%sWhileStatement\n", pad)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Body, indent+1)
	case *ast.ForInStatement:
		fmt.Printf("%sForInStatement %s\n", pad, n.Name)
		dumpASTNode(n.Iterable, indent+1)
		dumpASTNode(n.Body, indent+1)
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement\n", pad)
		if n.Value != nil {
			dumpASTNode(n.Value, indent+1)
		}
	case *ast.ThrowStatement:
		fmt.Printf("%sThrowStatement\n", pad)
		dumpASTNode(n.Value, indent+1)
	case *ast.FunctionDecl:
		fmt.Printf("%sFunctionDecl %s (exported=%v)\n", pad, n.Name, n.Exported)
		dumpASTNode(n.Body, indent+1)
	case *ast.StructDecl:
		fmt.Printf("%sStructDecl %s (exported=%v, %d field(s))\n", pad, n.Name, n.Exported, len(n.Fields))
	case *ast.UseStatement:
		fmt.Printf("%sUseStatement %s\n", pad, n.Path)
	case *ast.ExportStatement:
		fmt.Printf("%sExportStatement\n", pad)
		dumpASTNode(n.Decl, indent+1)
	case *ast.InfixExpr:
		fmt.Printf("%sInfixExpr (%s)\n", pad, n.Operator)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.PrefixExpr:
		fmt.Printf("%sPrefixExpr (%s)\n", pad, n.Operator)
		dumpASTNode(n.Right, indent+1)
	case *ast.PipelineExpr:
		fmt.Printf("%sPipelineExpr\n", pad)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Call, indent+1)
	case *ast.CallExpr:
		fmt.Printf("%sCallExpr (%d arg(s))\n", pad, len(n.Args))
		dumpASTNode(n.Callee, indent+1)
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.IndexExpr:
		fmt.Printf("%sIndexExpr\n", pad)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Index, indent+1)
	case *ast.MemberExpr:
		fmt.Printf("%sMemberExpr .%s\n", pad, n.Name)
		dumpASTNode(n.Left, indent+1)
	case *ast.RangeExpr:
		fmt.Printf("%sRangeExpr (inclusive=%v)\n", pad, n.Inclusive)
		dumpASTNode(n.Start, indent+1)
		dumpASTNode(n.End, indent+1)
	case *ast.LambdaLiteral:
		fmt.Printf("%sLambdaLiteral (%d param(s))\n", pad, len(n.Params))
		dumpASTNode(n.Body, indent+1)
	case *ast.PolyglotBlock:
		fmt.Printf("%sPolyglotBlock [%s] (%d binding(s))\n", pad, n.Language, len(n.Bindings))
	case *ast.StructLiteral:
		fmt.Printf("%sStructLiteral %s (%d field(s))\n", pad, n.Name, len(n.Fields))
	case *ast.ListLiteral:
		fmt.Printf("%sListLiteral (%d element(s))\n", pad, len(n.Elements))
		for _, e := range n.Elements {
			dumpASTNode(e, indent+1)
		}
	case *ast.DictLiteral:
		fmt.Printf("%sDictLiteral (%d entrie(s))\n", pad, len(n.Entries))
	case *ast.Identifier:
		fmt.Printf("%sIdentifier: %s\n", pad, n.Name)
	case *ast.IntLiteral:
		fmt.Printf("%sIntLiteral: %d\n", pad, n.Value)
	case *ast.FloatLiteral:
		fmt.Printf("%sFloatLiteral: %g\n", pad, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral: %q\n", pad, n.Value)
	case *ast.BoolLiteral:
		fmt.Printf("%sBoolLiteral: %v\n", pad, n.Value)
	case *ast.NullLiteral:
		fmt.Printf("%sNullLiteral\n", pad)
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
