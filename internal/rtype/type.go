// Package rtype implements NAAb's runtime type validator: a resolved
// Type descriptor tree and the Matches predicate consulted at variable
// declaration, call-argument binding, return, and struct-field
// construction.
package rtype

import (
	"fmt"
	"strings"

	"github.com/b-macker/NAAb-sub013/internal/value"
)

// Tag is the discriminant of a resolved Type.
type Tag int

const (
	Any Tag = iota
	Void
	TInt
	TFloat
	TString
	TBool
	TList
	TDict
	TFunction
	TStruct
	TUnion
	TNullable
)

// Type is a resolved type descriptor. Nullability is carried by
// wrapping in TNullable rather than as an orthogonal flag, which keeps
// Matches a single recursive function.
type Type struct {
	Tag Tag

	// TList
	Elem *Type
	// TDict
	Key *Type
	Val *Type
	// TStruct
	StructName string
	// TUnion
	Members []*Type
	// TNullable
	Inner *Type
	// TFunction
	Params []*Type
	Ret    *Type
}

func (t *Type) String() string {
	if t == nil {
		return "any"
	}
	switch t.Tag {
	case Any:
		return "any"
	case Void:
		return "void"
	case TInt:
		return "int"
	case TFloat:
		return "float"
	case TString:
		return "string"
	case TBool:
		return "bool"
	case TList:
		return "List<" + t.Elem.String() + ">"
	case TDict:
		return "Dict<" + t.Key.String() + ", " + t.Val.String() + ">"
	case TStruct:
		return t.StructName
	case TUnion:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	case TNullable:
		return t.Inner.String() + "?"
	case TFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Ret.String())
	default:
		return "?"
	}
}

var (
	AnyType    = &Type{Tag: Any}
	VoidType   = &Type{Tag: Void}
	IntType    = &Type{Tag: TInt}
	FloatType  = &Type{Tag: TFloat}
	StringType = &Type{Tag: TString}
	BoolType   = &Type{Tag: TBool}
)

func ListOf(elem *Type) *Type       { return &Type{Tag: TList, Elem: elem} }
func DictOf(k, v *Type) *Type       { return &Type{Tag: TDict, Key: k, Val: v} }
func StructNamed(name string) *Type { return &Type{Tag: TStruct, StructName: name} }
func Nullable(inner *Type) *Type {
	if inner != nil && inner.Tag == TNullable {
		return inner
	}
	return &Type{Tag: TNullable, Inner: inner}
}
func UnionOf(members ...*Type) *Type { return &Type{Tag: TUnion, Members: members} }
func FuncType(params []*Type, ret *Type) *Type {
	return &Type{Tag: TFunction, Params: params, Ret: ret}
}

// StructResolver looks up a struct's definition by name, so Matches can
// recognize generic specializations ("Base_T1_T2" matches "Base").
// internal/eval's module/struct registry implements this.
type StructResolver interface {
	StructDefMatches(instanceDefName, declaredName string) bool
}

// defaultStructResolver implements the bare prefix rule directly when
// no richer resolver is supplied.
type defaultStructResolver struct{}

func (defaultStructResolver) StructDefMatches(instanceDefName, declaredName string) bool {
	return instanceDefName == declaredName || strings.HasPrefix(instanceDefName, declaredName+"_")
}

// Matches reports whether v satisfies the runtime type t.
func Matches(v value.Value, t *Type) bool {
	return MatchesWithResolver(v, t, defaultStructResolver{})
}

// MatchesWithResolver is Matches, but lets the caller supply a
// StructResolver aware of the live specialization cache.
func MatchesWithResolver(v value.Value, t *Type, resolver StructResolver) bool {
	if t == nil || t.Tag == Any {
		return true
	}
	if t.Tag == TNullable {
		if _, isNull := v.(value.Null); isNull {
			return true
		}
		return MatchesWithResolver(v, t.Inner, resolver)
	}
	if t.Tag == TUnion {
		for _, m := range t.Members {
			if MatchesWithResolver(v, m, resolver) {
				return true
			}
		}
		return false
	}

	switch t.Tag {
	case Void:
		_, ok := v.(value.Null)
		return ok
	case TInt:
		_, ok := v.(value.Int)
		return ok
	case TFloat:
		switch v.(type) {
		case value.Float, value.Int:
			// numeric widening: Int is always acceptable where Float is required.
			return true
		}
		return false
	case TString:
		_, ok := v.(value.String)
		return ok
	case TBool:
		_, ok := v.(value.Bool)
		return ok
	case TList:
		l, ok := v.(*value.List)
		if !ok {
			return false
		}
		for _, e := range l.Elements {
			if !MatchesWithResolver(e, t.Elem, resolver) {
				return false
			}
		}
		return true
	case TDict:
		d, ok := v.(*value.Dict)
		if !ok {
			return false
		}
		matches := true
		d.Range(func(k, val2 value.Value) bool {
			if !MatchesWithResolver(k, t.Key, resolver) || !MatchesWithResolver(val2, t.Val, resolver) {
				matches = false
				return false
			}
			return true
		})
		return matches
	case TStruct:
		s, ok := v.(*value.Struct)
		if !ok || s.Def == nil {
			return false
		}
		if resolver != nil {
			return resolver.StructDefMatches(s.Def.Name, t.StructName)
		}
		return s.Def.Name == t.StructName
	case TFunction:
		_, ok := v.(*value.Function)
		return ok
	default:
		return false
	}
}

// IsNullable reports whether t permits Null.
func IsNullable(t *Type) bool {
	return t != nil && t.Tag == TNullable
}
