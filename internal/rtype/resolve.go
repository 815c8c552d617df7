package rtype

import "github.com/b-macker/NAAb-sub013/internal/ast"

// Resolve converts a parsed ast.TypeExpr into a resolved Type. Generic
// type parameters (bare identifiers matching an entry in genericParams)
// resolve to Any, since their concrete binding is only known at
// instantiation time. internal/eval stores concrete field types on a
// generic struct's specialized definition at the instantiation site; a
// generic function's parameters and result are checked against Any.
func Resolve(t ast.TypeExpr, genericParams map[string]bool) *Type {
	if t == nil {
		return AnyType
	}
	var resolved *Type
	switch n := t.(type) {
	case *ast.NamedType:
		resolved = resolveNamed(n, genericParams)
	case *ast.ListType:
		resolved = ListOf(Resolve(n.Elem, genericParams))
	case *ast.DictType:
		resolved = DictOf(Resolve(n.Key, genericParams), Resolve(n.Value, genericParams))
	case *ast.UnionType:
		members := make([]*Type, len(n.Members))
		for i, m := range n.Members {
			members[i] = Resolve(m, genericParams)
		}
		resolved = UnionOf(members...)
	default:
		resolved = AnyType
	}
	if nullable(t) && resolved.Tag != TNullable {
		resolved = Nullable(resolved)
	}
	return resolved
}

func nullable(t ast.TypeExpr) bool {
	switch n := t.(type) {
	case *ast.NamedType:
		return n.Nullable
	case *ast.ListType:
		return n.Nullable
	case *ast.DictType:
		return n.Nullable
	case *ast.UnionType:
		return n.Nullable
	default:
		return false
	}
}

func resolveNamed(n *ast.NamedType, genericParams map[string]bool) *Type {
	switch n.Name {
	case "any", "Any":
		return AnyType
	case "void", "Void":
		return VoidType
	case "int":
		return IntType
	case "float":
		return FloatType
	case "string":
		return StringType
	case "bool":
		return BoolType
	}
	if genericParams != nil && genericParams[n.Name] {
		return AnyType
	}
	return StructNamed(n.Name)
}
