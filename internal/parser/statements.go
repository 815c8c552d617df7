package parser

import (
	"github.com/b-macker/NAAb-sub013/internal/ast"
	"github.com/b-macker/NAAb-sub013/internal/token"
)

// parseStatement dispatches on curTok and returns one parsed statement,
// leaving curTok on that statement's last token. A bare `;` parses to
// nil (an empty statement), which ParseProgram/parseBlockStatement skip.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Kind {
	case token.SEMI:
		return nil
	case token.LET:
		return p.parseLetStatement()
	case token.FN:
		return p.parseFunctionDecl(false)
	case token.STRUCT:
		return p.parseStructDecl(false)
	case token.USE:
		return p.parseUseStatement()
	case token.EXPORT:
		return p.parseExportStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForInStatement()
	case token.BREAK:
		pos := p.curTok.Pos
		if p.peekIs(token.SEMI) {
			p.nextToken()
		}
		return &ast.BreakStatement{Position: pos}
	case token.CONTINUE:
		pos := p.curTok.Pos
		if p.peekIs(token.SEMI) {
			p.nextToken()
		}
		return &ast.ContinueStatement{Position: pos}
	case token.RETURN:
		return p.parseReturnStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	pos := p.curTok.Pos // LET
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal

	var typ ast.TypeExpr
	if p.peekIs(token.COLON) {
		p.nextToken() // COLON
		p.nextToken() // type's first token
		typ = p.parseTypeExpr()
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken() // value's first token
	val := p.parseExpression(LOWEST)

	stmt := &ast.LetStatement{Position: pos, Name: name, Type: typ, Value: val}
	if p.peekIs(token.SEMI) {
		p.nextToken()
	}
	return stmt
}

// parseGenericParams consumes an optional `<T, U>` clause, called with
// curTok on the name preceding it. Leaves curTok on the closing `>` if
// a clause was present, otherwise curTok is unchanged.
func (p *Parser) parseGenericParams() []string {
	if !p.peekIs(token.LT) {
		return nil
	}
	p.nextToken() // LT
	var names []string
	for {
		if !p.expectPeek(token.IDENT) {
			break
		}
		names = append(names, p.curTok.Literal)
		if p.peekIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.GT)
	return names
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken() // first param name
	params = append(params, p.parseParam())
	for p.peekIs(token.COMMA) {
		p.nextToken() // COMMA
		p.nextToken() // next param name
		params = append(params, p.parseParam())
	}
	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseParam() ast.Param {
	name := p.curTok.Literal
	var typ ast.TypeExpr
	if p.peekIs(token.COLON) {
		p.nextToken() // COLON
		p.nextToken() // type's first token
		typ = p.parseTypeExpr()
	}
	return ast.Param{Name: name, Type: typ}
}

func (p *Parser) parseFunctionDecl(exported bool) ast.Statement {
	pos := p.curTok.Pos // FN
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal
	generics := p.parseGenericParams()

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParamList() // curTok ends on RPAREN

	var ret ast.TypeExpr
	if p.peekIs(token.ARROW) {
		p.nextToken() // ARROW
		p.nextToken() // type's first token
		ret = p.parseTypeExpr()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()

	return &ast.FunctionDecl{
		Position:      pos,
		Name:          name,
		GenericParams: generics,
		Params:        params,
		ReturnType:    ret,
		Body:          body,
		Exported:      exported,
	}
}

func (p *Parser) parseFieldDecl() ast.FieldDecl {
	fname := p.curTok.Literal
	var typ ast.TypeExpr
	if p.peekIs(token.COLON) {
		p.nextToken() // COLON
		p.nextToken() // type's first token
		typ = p.parseTypeExpr()
	}
	var def ast.Expression
	if p.peekIs(token.ASSIGN) {
		p.nextToken() // ASSIGN
		p.nextToken() // value's first token
		def = p.parseExpression(LOWEST)
	}
	return ast.FieldDecl{Name: fname, Type: typ, Default: def}
}

func (p *Parser) parseStructDecl(exported bool) ast.Statement {
	pos := p.curTok.Pos // STRUCT
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal
	generics := p.parseGenericParams()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	var fields []ast.FieldDecl
	p.nextToken() // first field name or RBRACE
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		fields = append(fields, p.parseFieldDecl())
		if p.peekIs(token.COMMA) || p.peekIs(token.SEMI) {
			p.nextToken()
		}
		p.nextToken()
	}

	return &ast.StructDecl{
		Position:      pos,
		Name:          name,
		GenericParams: generics,
		Fields:        fields,
		Exported:      exported,
	}
}

func (p *Parser) parseUseStatement() ast.Statement {
	pos := p.curTok.Pos // USE
	if !p.expectPeek(token.STRING) {
		return nil
	}
	path := p.curTok.Literal

	alias := ""
	if p.peekIs(token.AS) {
		p.nextToken() // AS
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		alias = p.curTok.Literal
	}

	stmt := &ast.UseStatement{Position: pos, Path: path, Alias: alias}
	if p.peekIs(token.SEMI) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExportStatement() ast.Statement {
	pos := p.curTok.Pos // EXPORT
	p.nextToken()
	switch p.curTok.Kind {
	case token.FN:
		return p.parseFunctionDecl(true)
	case token.STRUCT:
		return p.parseStructDecl(true)
	case token.LET:
		inner := p.parseLetStatement()
		if inner == nil {
			return nil
		}
		return &ast.ExportStatement{Position: pos, Decl: inner}
	default:
		p.errorf(pos, "export must be followed by let, fn, or struct, got %v", p.curTok.Kind)
		return nil
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	pos := p.curTok.Pos // IF
	p.nextToken()        // condition's first token
	cond := p.parseExpression(LOWEST)

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	then := p.parseBlockStatement()

	var elseStmt ast.Statement
	if p.peekIs(token.ELSE) {
		p.nextToken() // ELSE
		if p.peekIs(token.IF) {
			p.nextToken() // IF
			elseStmt = p.parseIfStatement()
		} else if p.expectPeek(token.LBRACE) {
			elseStmt = p.parseBlockStatement()
		}
	}

	return &ast.IfStatement{Position: pos, Condition: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhileStatement() ast.Statement {
	pos := p.curTok.Pos // WHILE
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.WhileStatement{Position: pos, Condition: cond, Body: body}
}

func (p *Parser) parseForInStatement() ast.Statement {
	pos := p.curTok.Pos // FOR
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := p.curTok.Literal
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken() // iterable's first token
	iterable := p.parseExpression(LOWEST)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.ForInStatement{Position: pos, Name: name, Iterable: iterable, Body: body}
}

// parseBlockStatement is entered with curTok on the opening `{` and
// leaves curTok on the matching `}`.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Position: p.curTok.Pos}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseReturnStatement() ast.Statement {
	pos := p.curTok.Pos
	if p.peekIs(token.SEMI) || p.peekIs(token.RBRACE) {
		stmt := &ast.ReturnStatement{Position: pos}
		if p.peekIs(token.SEMI) {
			p.nextToken()
		}
		return stmt
	}
	p.nextToken()
	val := p.parseExpression(LOWEST)
	stmt := &ast.ReturnStatement{Position: pos, Value: val}
	if p.peekIs(token.SEMI) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	pos := p.curTok.Pos
	p.nextToken()
	val := p.parseExpression(LOWEST)
	stmt := &ast.ThrowStatement{Position: pos, Value: val}
	if p.peekIs(token.SEMI) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	pos := p.curTok.Pos // TRY
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()

	var catch *ast.CatchClause
	if p.peekIs(token.CATCH) {
		p.nextToken() // CATCH
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		name := p.curTok.Literal
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		catch = &ast.CatchClause{Name: name, Body: p.parseBlockStatement()}
	}

	var finallyBlock *ast.BlockStatement
	if p.peekIs(token.FINALLY) {
		p.nextToken() // FINALLY
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		finallyBlock = p.parseBlockStatement()
	}

	return &ast.TryStatement{Position: pos, Body: body, Catch: catch, Finally: finallyBlock}
}

// parseExpressionOrAssignStatement parses an expression and, if it is
// immediately followed by `=`, reinterprets it as the target of an
// AssignStatement, IndexAssignStatement, or MemberAssignStatement
// depending on the target expression's shape.
func (p *Parser) parseExpressionOrAssignStatement() ast.Statement {
	pos := p.curTok.Pos
	expr := p.parseExpression(LOWEST)

	if p.peekIs(token.ASSIGN) {
		p.nextToken() // ASSIGN
		p.nextToken() // value's first token
		val := p.parseExpression(LOWEST)

		var stmt ast.Statement
		switch target := expr.(type) {
		case *ast.Identifier:
			stmt = &ast.AssignStatement{Position: pos, Name: target.Name, Value: val}
		case *ast.IndexExpr:
			stmt = &ast.IndexAssignStatement{Position: pos, Target: target.Left, Index: target.Index, Value: val}
		case *ast.MemberExpr:
			stmt = &ast.MemberAssignStatement{Position: pos, Target: target.Left, Field: target.Name, Value: val}
		default:
			p.errorf(pos, "invalid assignment target")
			return nil
		}
		if p.peekIs(token.SEMI) {
			p.nextToken()
		}
		return stmt
	}

	stmt := &ast.ExpressionStatement{Position: pos, Expression: expr}
	if p.peekIs(token.SEMI) {
		p.nextToken()
	}
	return stmt
}
