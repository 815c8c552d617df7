package ast

import "github.com/b-macker/NAAb-sub013/internal/token"

func (*Identifier) expressionNode()      {}
func (*IntLiteral) expressionNode()      {}
func (*FloatLiteral) expressionNode()    {}
func (*BoolLiteral) expressionNode()     {}
func (*StringLiteral) expressionNode()   {}
func (*NullLiteral) expressionNode()     {}
func (*ListLiteral) expressionNode()     {}
func (*DictLiteral) expressionNode()     {}
func (*StructLiteral) expressionNode()   {}
func (*RangeExpr) expressionNode()       {}
func (*LambdaLiteral) expressionNode()   {}
func (*PrefixExpr) expressionNode()      {}
func (*InfixExpr) expressionNode()       {}
func (*PipelineExpr) expressionNode()    {}
func (*CallExpr) expressionNode()        {}
func (*IndexExpr) expressionNode()       {}
func (*MemberExpr) expressionNode()      {}
func (*PolyglotBlock) expressionNode()   {}

// Identifier is a bare name reference.
type Identifier struct {
	Position token.Position
	Name     string
}

func (n *Identifier) Pos() token.Position { return n.Position }

// IntLiteral is a 64-bit signed integer literal.
type IntLiteral struct {
	Position token.Position
	Value    int64
}

func (n *IntLiteral) Pos() token.Position { return n.Position }

// FloatLiteral is a 64-bit IEEE float literal.
type FloatLiteral struct {
	Position token.Position
	Value    float64
}

func (n *FloatLiteral) Pos() token.Position { return n.Position }

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	Position token.Position
	Value    bool
}

func (n *BoolLiteral) Pos() token.Position { return n.Position }

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Position token.Position
	Value    string
}

func (n *StringLiteral) Pos() token.Position { return n.Position }

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Position token.Position
}

func (n *NullLiteral) Pos() token.Position { return n.Position }

// ListLiteral is `[a, b, c]`.
type ListLiteral struct {
	Position token.Position
	Elements []Expression
}

func (n *ListLiteral) Pos() token.Position { return n.Position }

// DictEntry is one `key: value` pair of a DictLiteral.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral is `{k1: v1, k2: v2}`.
type DictLiteral struct {
	Position token.Position
	Entries  []DictEntry
}

func (n *DictLiteral) Pos() token.Position { return n.Position }

// FieldInit is one `name: value` field initializer inside a StructLiteral.
type FieldInit struct {
	Name  string
	Value Expression
}

// StructLiteral is `new Name { f1: v1, f2: v2 }`, `new` is mandatory.
type StructLiteral struct {
	Position token.Position
	Name     string
	TypeArgs []TypeExpr
	Fields   []FieldInit
}

func (n *StructLiteral) Pos() token.Position { return n.Position }

// RangeExpr is `a..b` (exclusive) or `a..=b` (inclusive).
type RangeExpr struct {
	Position  token.Position
	Start     Expression
	End       Expression
	Inclusive bool
}

func (n *RangeExpr) Pos() token.Position { return n.Position }

// Param is one declared function/lambda parameter.
type Param struct {
	Name string
	Type TypeExpr // nil means Any
}

// LambdaLiteral is `|params| -> RetType { body }` or `|params| expr`.
type LambdaLiteral struct {
	Position   token.Position
	Params     []Param
	ReturnType TypeExpr
	Body       *BlockStatement
}

func (n *LambdaLiteral) Pos() token.Position { return n.Position }

// PrefixExpr is a unary operator expression (`-x`, `!x`).
type PrefixExpr struct {
	Position token.Position
	Operator string
	Right    Expression
}

func (n *PrefixExpr) Pos() token.Position { return n.Position }

// InfixExpr is a binary operator expression.
type InfixExpr struct {
	Position token.Position
	Left     Expression
	Operator string
	Right    Expression
}

func (n *InfixExpr) Pos() token.Position { return n.Position }

// PipelineExpr is `x |> f(args)`, sugar for `f(x, args...)`.
type PipelineExpr struct {
	Position token.Position
	Left     Expression
	Call     *CallExpr
}

func (n *PipelineExpr) Pos() token.Position { return n.Position }

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Position token.Position
	Callee   Expression
	Args     []Expression
}

func (n *CallExpr) Pos() token.Position { return n.Position }

// IndexExpr is `left[index]`.
type IndexExpr struct {
	Position token.Position
	Left     Expression
	Index    Expression
}

func (n *IndexExpr) Pos() token.Position { return n.Position }

// MemberExpr is `left.name`.
type MemberExpr struct {
	Position token.Position
	Left     Expression
	Name     string
}

func (n *MemberExpr) Pos() token.Position { return n.Position }

// PolyglotBlock is an inline foreign-code block: `<<lang[bindings]\n code \n>>`.
type PolyglotBlock struct {
	Position token.Position
	Language string
	Bindings []string
	Code     string
}

func (n *PolyglotBlock) Pos() token.Position { return n.Position }
