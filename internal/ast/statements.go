package ast

import "github.com/b-macker/NAAb-sub013/internal/token"

func (*LetStatement) statementNode()        {}
func (*AssignStatement) statementNode()     {}
func (*IndexAssignStatement) statementNode() {}
func (*MemberAssignStatement) statementNode() {}
func (*ExpressionStatement) statementNode() {}
func (*BlockStatement) statementNode()      {}
func (*IfStatement) statementNode()         {}
func (*WhileStatement) statementNode()      {}
func (*ForInStatement) statementNode()      {}
func (*BreakStatement) statementNode()      {}
func (*ContinueStatement) statementNode()   {}
func (*ReturnStatement) statementNode()     {}
func (*ThrowStatement) statementNode()      {}
func (*TryStatement) statementNode()        {}
func (*FunctionDecl) statementNode()        {}
func (*StructDecl) statementNode()          {}
func (*UseStatement) statementNode()        {}
func (*ExportStatement) statementNode()     {}

// LetStatement is `let name[: Type] = expr`.
type LetStatement struct {
	Position token.Position
	Name     string
	Type     TypeExpr // nil if not annotated
	Value    Expression
}

func (n *LetStatement) Pos() token.Position { return n.Position }

// AssignStatement is `name = expr` for an existing binding.
type AssignStatement struct {
	Position token.Position
	Name     string
	Value    Expression
}

func (n *AssignStatement) Pos() token.Position { return n.Position }

// IndexAssignStatement is `target[index] = expr`.
type IndexAssignStatement struct {
	Position token.Position
	Target   Expression
	Index    Expression
	Value    Expression
}

func (n *IndexAssignStatement) Pos() token.Position { return n.Position }

// MemberAssignStatement is `target.field = expr`.
type MemberAssignStatement struct {
	Position token.Position
	Target   Expression
	Field    string
	Value    Expression
}

func (n *MemberAssignStatement) Pos() token.Position { return n.Position }

// ExpressionStatement wraps an expression evaluated for its side effect.
type ExpressionStatement struct {
	Position   token.Position
	Expression Expression
}

func (n *ExpressionStatement) Pos() token.Position { return n.Position }

// BlockStatement is `{ stmt; stmt; ... }`, pushing its own scope.
type BlockStatement struct {
	Position   token.Position
	Statements []Statement
}

func (n *BlockStatement) Pos() token.Position { return n.Position }

// IfStatement is `if cond { ... } else { ... }`; Else may be nil or another
// *IfStatement (else-if chaining) or a *BlockStatement.
type IfStatement struct {
	Position  token.Position
	Condition Expression
	Then      *BlockStatement
	Else      Statement
}

func (n *IfStatement) Pos() token.Position { return n.Position }

// WhileStatement is `while cond { ... }`.
type WhileStatement struct {
	Position  token.Position
	Condition Expression
	Body      *BlockStatement
}

func (n *WhileStatement) Pos() token.Position { return n.Position }

// ForInStatement is `for name in iterable { ... }`.
type ForInStatement struct {
	Position token.Position
	Name     string
	Iterable Expression
	Body     *BlockStatement
}

func (n *ForInStatement) Pos() token.Position { return n.Position }

// BreakStatement is `break`.
type BreakStatement struct{ Position token.Position }

func (n *BreakStatement) Pos() token.Position { return n.Position }

// ContinueStatement is `continue`.
type ContinueStatement struct{ Position token.Position }

func (n *ContinueStatement) Pos() token.Position { return n.Position }

// ReturnStatement is `return [expr]`.
type ReturnStatement struct {
	Position token.Position
	Value    Expression // nil for bare `return`
}

func (n *ReturnStatement) Pos() token.Position { return n.Position }

// ThrowStatement is `throw expr`.
type ThrowStatement struct {
	Position token.Position
	Value    Expression
}

func (n *ThrowStatement) Pos() token.Position { return n.Position }

// CatchClause is the `catch (name) { ... }` part of a TryStatement.
type CatchClause struct {
	Name string
	Body *BlockStatement
}

// TryStatement is `try { } catch (e) { } finally { }`; Catch and Finally
// are independently optional (both nil, either, or both present).
type TryStatement struct {
	Position token.Position
	Body     *BlockStatement
	Catch    *CatchClause
	Finally  *BlockStatement
}

func (n *TryStatement) Pos() token.Position { return n.Position }

// FunctionDecl is `fn name<T>(params) -> RetType { body }`.
type FunctionDecl struct {
	Position       token.Position
	Name           string
	GenericParams  []string
	Params         []Param
	ReturnType     TypeExpr // nil means Void
	Body           *BlockStatement
	Exported       bool
}

func (n *FunctionDecl) Pos() token.Position { return n.Position }

// FieldDecl is one field of a StructDecl.
type FieldDecl struct {
	Name    string
	Type    TypeExpr
	Default Expression // nil if none
}

// StructDecl is `struct Name<T> { field: Type, ... }`.
type StructDecl struct {
	Position      token.Position
	Name          string
	GenericParams []string
	Fields        []FieldDecl
	Exported      bool
}

func (n *StructDecl) Pos() token.Position { return n.Position }

// UseStatement is `use path` or `use path as alias`.
type UseStatement struct {
	Position token.Position
	Path     string
	Alias    string // "" if no `as` clause; leaf name of Path is used
}

func (n *UseStatement) Pos() token.Position { return n.Position }

// ExportStatement marks its inner declaration as part of the module's
// exports table. Only top-level `let`, `fn`, and `struct` may be wrapped.
type ExportStatement struct {
	Position token.Position
	Decl     Statement
}

func (n *ExportStatement) Pos() token.Position { return n.Position }
