package parser

import "github.com/b-macker/NAAb-sub013/internal/ast"
import "github.com/b-macker/NAAb-sub013/internal/token"

// parseTypeExpr parses a type annotation starting at curTok, leaving
// curTok on the annotation's last token. Handles a trailing `T1 | T2`
// union by repeatedly consuming BAR-separated primary types.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	first := p.parsePrimaryType()
	if !p.peekIs(token.BAR) {
		return first
	}
	pos := first.Pos()
	members := []ast.TypeExpr{first}
	for p.peekIs(token.BAR) {
		p.nextToken() // BAR
		p.nextToken() // next member's first token
		members = append(members, p.parsePrimaryType())
	}
	return &ast.UnionType{Position: pos, Members: members}
}

// parsePrimaryType parses one base type name, its optional `<Args>`
// generic list, and a trailing `?` nullable marker. `List<T>` and
// `Dict<K, V>` are recognized by name and built as their own AST node
// kinds rather than a generic NamedType, matching ast/types.go's shape.
func (p *Parser) parsePrimaryType() ast.TypeExpr {
	pos := p.curTok.Pos
	if !p.curIs(token.IDENT) {
		p.errorf(pos, "expected type name, got %v", p.curTok.Kind)
		return &ast.NamedType{Position: pos, Name: "any"}
	}
	name := p.curTok.Literal

	var args []ast.TypeExpr
	if p.peekIs(token.LT) {
		p.nextToken() // LT
		p.nextToken() // first arg's first token
		args = append(args, p.parseTypeExpr())
		for p.peekIs(token.COMMA) {
			p.nextToken() // COMMA
			p.nextToken() // next arg's first token
			args = append(args, p.parseTypeExpr())
		}
		p.expectPeek(token.GT)
	}

	nullable := false
	if p.peekIs(token.QUESTION) {
		p.nextToken()
		nullable = true
	}

	switch name {
	case "List":
		elem := ast.TypeExpr(&ast.NamedType{Position: pos, Name: "any"})
		if len(args) > 0 {
			elem = args[0]
		}
		return &ast.ListType{Position: pos, Elem: elem, Nullable: nullable}
	case "Dict":
		key := ast.TypeExpr(&ast.NamedType{Position: pos, Name: "any"})
		val := ast.TypeExpr(&ast.NamedType{Position: pos, Name: "any"})
		if len(args) > 0 {
			key = args[0]
		}
		if len(args) > 1 {
			val = args[1]
		}
		return &ast.DictType{Position: pos, Key: key, Value: val, Nullable: nullable}
	default:
		return &ast.NamedType{Position: pos, Name: name, TypeArgs: args, Nullable: nullable}
	}
}
