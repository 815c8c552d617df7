// Package ast defines the abstract syntax tree NAAb's evaluator consumes.
//
// The lexer and parser are external collaborators to the execution core:
// this package only fixes the shape of the tree they hand to
// internal/eval. A lexer/parser lives in internal/lexer and
// internal/parser so the CLI and end-to-end tests in this repository are
// runnable without a separate frontend.
package ast

import "github.com/b-macker/NAAb-sub013/internal/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Statement is a top-level or block-level statement node.
type Statement interface {
	Node
	statementNode()
}

// Expression is a value-producing node.
type Expression interface {
	Node
	expressionNode()
}

// TypeExpr is a parsed type annotation (`int`, `string?`, `List<int>`, ...).
type TypeExpr interface {
	Node
	typeExprNode()
	String() string
}

// Program is the root of a parsed unit.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) == 0 {
		return token.Position{}
	}
	return p.Statements[0].Pos()
}
