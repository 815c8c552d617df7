package parser

import (
	"strconv"
	"strings"

	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/token"
)

// parseExpression is the Pratt-parser core: parse one prefix term, then
// keep folding in infix operators whose precedence exceeds precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixFns[p.curTok.Kind]
	if prefix == nil {
		p.errorf(p.curTok.Pos, "no prefix parse function for %v (%q)", p.curTok.Kind, p.curTok.Literal)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMI) && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Kind]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Position: p.curTok.Pos, Name: p.curTok.Literal}
}

func (p *Parser) parseIntLiteral() ast.Expression {
	pos := p.curTok.Pos
	v, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
	if err != nil {
		p.errorf(pos, "invalid integer literal %q: %v", p.curTok.Literal, err)
	}
	return &ast.IntLiteral{Position: pos, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	pos := p.curTok.Pos
	v, err := strconv.ParseFloat(p.curTok.Literal, 64)
	if err != nil {
		p.errorf(pos, "invalid float literal %q: %v", p.curTok.Literal, err)
	}
	return &ast.FloatLiteral{Position: pos, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Position: p.curTok.Pos, Value: p.curTok.Literal}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Position: p.curTok.Pos, Value: p.curTok.Kind == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Position: p.curTok.Pos}
}

func (p *Parser) parsePrefixExpr() ast.Expression {
	pos := p.curTok.Pos
	op := p.curTok.Literal
	p.nextToken()
	right := p.parseExpression(PREFIX)
	return &ast.PrefixExpr{Position: pos, Operator: op, Right: right}
}

func (p *Parser) parseInfixExpr(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos
	op := p.curTok.Literal
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.InfixExpr{Position: pos, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseRangeExpr(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos
	inclusive := p.curIs(token.DOTDOTEQ)
	p.nextToken()
	right := p.parseExpression(RANGE)
	return &ast.RangeExpr{Position: pos, Start: left, End: right, Inclusive: inclusive}
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.nextToken() // inner expression's first token
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

// parseExpressionList parses a comma-separated expression list up to
// (and consuming) end, entered with curTok on the opening delimiter.
func (p *Parser) parseExpressionList(end token.Kind) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken() // first element's first token
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken() // COMMA
		p.nextToken() // next element's first token
		list = append(list, p.parseExpression(LOWEST))
	}
	p.expectPeek(end)
	return list
}

func (p *Parser) parseListLiteral() ast.Expression {
	pos := p.curTok.Pos // LBRACKET
	elems := p.parseExpressionList(token.RBRACKET)
	return &ast.ListLiteral{Position: pos, Elements: elems}
}

func (p *Parser) parseDictLiteral() ast.Expression {
	pos := p.curTok.Pos // LBRACE
	var entries []ast.DictEntry
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return &ast.DictLiteral{Position: pos, Entries: entries}
	}
	p.nextToken() // first key's first token
	for {
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken() // value's first token
		val := p.parseExpression(LOWEST)
		entries = append(entries, ast.DictEntry{Key: key, Value: val})
		if p.peekIs(token.COMMA) {
			p.nextToken() // COMMA
			p.nextToken() // next key's first token
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.DictLiteral{Position: pos, Entries: entries}
}

func (p *Parser) parseStructLiteral() ast.Expression {
	pos := p.curTok.Pos // NEW
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal

	var typeArgs []ast.TypeExpr
	if p.peekIs(token.LT) {
		p.nextToken() // LT
		p.nextToken() // first arg's first token
		typeArgs = append(typeArgs, p.parseTypeExpr())
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			typeArgs = append(typeArgs, p.parseTypeExpr())
		}
		p.expectPeek(token.GT)
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	var fields []ast.FieldInit
	if p.peekIs(token.RBRACE) {
		p.nextToken()
		return &ast.StructLiteral{Position: pos, Name: name, TypeArgs: typeArgs, Fields: fields}
	}
	p.nextToken() // first field name
	for {
		fname := p.curTok.Literal
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken() // value's first token
		val := p.parseExpression(LOWEST)
		fields = append(fields, ast.FieldInit{Name: fname, Value: val})
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return &ast.StructLiteral{Position: pos, Name: name, TypeArgs: typeArgs, Fields: fields}
}

// parseLambdaLiteral handles both block-bodied `|x| -> T { ... }` and
// expression-bodied `|x| x + 1` forms; the latter is sugar wrapped in a
// synthetic one-statement block so eval only ever sees *ast.BlockStatement.
// A parameter's type annotation is a single primary type: a `|` after it
// closes the parameter list rather than starting a union.
func (p *Parser) parseLambdaLiteral() ast.Expression {
	pos := p.curTok.Pos // BAR
	parseLambdaParam := func() ast.Param {
		name := p.curTok.Literal
		var typ ast.TypeExpr
		if p.peekIs(token.COLON) {
			p.nextToken() // COLON
			p.nextToken() // type's first token
			typ = p.parsePrimaryType()
		}
		return ast.Param{Name: name, Type: typ}
	}
	var params []ast.Param
	if !p.peekIs(token.BAR) {
		p.nextToken() // first param name
		params = append(params, parseLambdaParam())
		for p.peekIs(token.COMMA) {
			p.nextToken() // COMMA
			p.nextToken() // next param name
			params = append(params, parseLambdaParam())
		}
	}
	if !p.expectPeek(token.BAR) {
		return nil
	}

	var ret ast.TypeExpr
	if p.peekIs(token.ARROW) {
		p.nextToken() // ARROW
		p.nextToken() // type's first token
		ret = p.parseTypeExpr()
	}

	var body *ast.BlockStatement
	if p.peekIs(token.LBRACE) {
		p.nextToken()
		body = p.parseBlockStatement()
	} else {
		p.nextToken() // expression's first token
		exprPos := p.curTok.Pos
		expr := p.parseExpression(LOWEST)
		body = &ast.BlockStatement{
			Position:   exprPos,
			Statements: []ast.Statement{&ast.ReturnStatement{Position: exprPos, Value: expr}},
		}
	}

	return &ast.LambdaLiteral{Position: pos, Params: params, ReturnType: ret, Body: body}
}

// parsePolyglotBlock decodes the POLYGLOT token's Literal, encoded by
// the lexer as "lang\nb1,b2,...\ncode".
func (p *Parser) parsePolyglotBlock() ast.Expression {
	pos := p.curTok.Pos
	parts := strings.SplitN(p.curTok.Literal, "\n", 3)
	lang := parts[0]
	var bindings []string
	if len(parts) > 1 && parts[1] != "" {
		bindings = strings.Split(parts[1], ",")
	}
	code := ""
	if len(parts) > 2 {
		code = parts[2]
	}
	return &ast.PolyglotBlock{Position: pos, Language: lang, Bindings: bindings, Code: code}
}

func (p *Parser) parseCallExpr(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos // LPAREN
	args := p.parseExpressionList(token.RPAREN)
	return &ast.CallExpr{Position: pos, Callee: left, Args: args}
}

func (p *Parser) parseIndexExpr(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos // LBRACKET
	p.nextToken()        // index's first token
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpr{Position: pos, Left: left, Index: idx}
}

func (p *Parser) parseMemberExpr(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos // DOT
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.MemberExpr{Position: pos, Left: left, Name: p.curTok.Literal}
}

// parsePipelineExpr parses `left |> callee(args...)`, requiring the
// right-hand side to parse down to a call expression: pipeline is sugar
// for `f(x, args...)`, so it only ever rewrites a call's argument list
// at eval time, never an arbitrary expression.
func (p *Parser) parsePipelineExpr(left ast.Expression) ast.Expression {
	pos := p.curTok.Pos // PIPE
	p.nextToken()        // callee's first token
	rhs := p.parseExpression(PIPELINE)
	call, ok := rhs.(*ast.CallExpr)
	if !ok {
		p.errorf(pos, "pipeline target must be a function call")
		return left
	}
	return &ast.PipelineExpr{Position: pos, Left: left, Call: call}
}
