// Package parser is a Pratt parser turning a token.Token stream into an
// *ast.Program: curToken/peekToken lookahead, a prefix/infix
// parse-function registry keyed by token kind, and a precedence table
// driving precedence climbing. The lexer/parser front end exists only so
// the CLI and end-to-end tests have something to hand the evaluator a
// real AST from; NAAb's execution semantics live downstream of it.
package parser

import (
	"fmt"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/lexer"
	"github.com/b-macker/NAAb-sub013/internal/token"
)

// precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	PIPELINE    // |>
	OR          // ||
	AND         // &&
	EQUALITY    // == !=
	COMPARISON  // < > <= >=
	RANGE       // .. ..=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALLINDEX   // f(x) a[i] a.b
)

var precedences = map[token.Kind]int{
	token.PIPE:     PIPELINE,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALITY,
	token.NEQ:      EQUALITY,
	token.LT:       COMPARISON,
	token.GT:       COMPARISON,
	token.LE:       COMPARISON,
	token.GE:       COMPARISON,
	token.DOTDOT:   RANGE,
	token.DOTDOTEQ: RANGE,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.STAR:     PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALLINDEX,
	token.LBRACKET: CALLINDEX,
	token.DOT:      CALLINDEX,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a token stream into an *ast.Program, accumulating
// errors rather than stopping at the first one so a single `naab
// check` run reports as much as it can.
type Parser struct {
	l *lexer.Lexer

	curTok  token.Token
	peekTok token.Token

	errors []string

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New constructs a Parser over l and registers every prefix/infix
// parse function NAAb's grammar needs.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.prefixFns = make(map[token.Kind]prefixParseFn)
	p.infixFns = make(map[token.Kind]infixParseFn)

	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.NULL, p.parseNullLiteral)
	p.registerPrefix(token.BANG, p.parsePrefixExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.LBRACKET, p.parseListLiteral)
	p.registerPrefix(token.LBRACE, p.parseDictLiteral)
	p.registerPrefix(token.NEW, p.parseStructLiteral)
	p.registerPrefix(token.BAR, p.parseLambdaLiteral)
	p.registerPrefix(token.POLYGLOT, p.parsePolyglotBlock)

	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.STAR, p.parseInfixExpr)
	p.registerInfix(token.SLASH, p.parseInfixExpr)
	p.registerInfix(token.PERCENT, p.parseInfixExpr)
	p.registerInfix(token.EQ, p.parseInfixExpr)
	p.registerInfix(token.NEQ, p.parseInfixExpr)
	p.registerInfix(token.LT, p.parseInfixExpr)
	p.registerInfix(token.GT, p.parseInfixExpr)
	p.registerInfix(token.LE, p.parseInfixExpr)
	p.registerInfix(token.GE, p.parseInfixExpr)
	p.registerInfix(token.AND, p.parseInfixExpr)
	p.registerInfix(token.OR, p.parseInfixExpr)
	p.registerInfix(token.DOTDOT, p.parseRangeExpr)
	p.registerInfix(token.DOTDOTEQ, p.parseRangeExpr)
	p.registerInfix(token.LPAREN, p.parseCallExpr)
	p.registerInfix(token.LBRACKET, p.parseIndexExpr)
	p.registerInfix(token.DOT, p.parseMemberExpr)
	p.registerInfix(token.PIPE, p.parsePipelineExpr)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(k token.Kind, fn prefixParseFn) { p.prefixFns[k] = fn }
func (p *Parser) registerInfix(k token.Kind, fn infixParseFn)   { p.infixFns[k] = fn }

// Errors returns every parse error accumulated so far, combined with
// any lexical errors the underlying lexer collected.
func (p *Parser) Errors() []string {
	all := append([]string{}, p.l.Errors()...)
	return append(all, p.errors...)
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf("%s: %s", pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekTok.Kind == k }

func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekIs(k) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekTok.Pos, "expected next token to be %v, got %v (%q)", k, p.peekTok.Kind, p.peekTok.Literal)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekTok.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curTok.Kind]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the full token stream into an *ast.Program and
// returns any accumulated parse/lex errors. Each parseXStatement
// leaves curTok on the last token of its statement (typically a `;`
// or a block's closing `}`); the loop's nextToken() advances past it
// to the first token of the next statement.
func (p *Parser) ParseProgram() (*ast.Program, []string) {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog, p.Errors()
}
