package ast

import "github.com/b-macker/NAAb-sub013/internal/token"

// NamedType is a base type name, optionally with generic type arguments
// (`int`, `string`, `Pair<int, string>`, `MyStruct`).
type NamedType struct {
	Position  token.Position
	Name      string
	TypeArgs  []TypeExpr
	Nullable  bool // trailing `?`
}

func (t *NamedType) Pos() token.Position { return t.Position }
func (t *NamedType) typeExprNode()       {}
func (t *NamedType) String() string {
	s := t.Name
	if len(t.TypeArgs) > 0 {
		s += "<"
		for i, a := range t.TypeArgs {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		s += ">"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

// ListType is `List<Elem>`.
type ListType struct {
	Position token.Position
	Elem     TypeExpr
	Nullable bool
}

func (t *ListType) Pos() token.Position { return t.Position }
func (t *ListType) typeExprNode()       {}
func (t *ListType) String() string {
	s := "List<" + t.Elem.String() + ">"
	if t.Nullable {
		s += "?"
	}
	return s
}

// DictType is `Dict<Key, Value>`.
type DictType struct {
	Position token.Position
	Key      TypeExpr
	Value    TypeExpr
	Nullable bool
}

func (t *DictType) Pos() token.Position { return t.Position }
func (t *DictType) typeExprNode()       {}
func (t *DictType) String() string {
	s := "Dict<" + t.Key.String() + ", " + t.Value.String() + ">"
	if t.Nullable {
		s += "?"
	}
	return s
}

// UnionType is `T1 | T2 | ...`.
type UnionType struct {
	Position token.Position
	Members  []TypeExpr
	Nullable bool
}

func (t *UnionType) Pos() token.Position { return t.Position }
func (t *UnionType) typeExprNode()       {}
func (t *UnionType) String() string {
	s := ""
	for i, m := range t.Members {
		if i > 0 {
			s += " | "
		}
		s += m.String()
	}
	if t.Nullable {
		s += "?"
	}
	return s
}
