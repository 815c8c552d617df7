package rtype

import (
	"testing"

	"github.com/b-macker/NAAb-sub013/internal/ast"
)

func TestResolveBuiltinNames(t *testing.T) {
	cases := map[string]*Type{
		"int":    IntType,
		"float":  FloatType,
		"string": StringType,
		"bool":   BoolType,
		"any":    AnyType,
		"void":   VoidType,
	}
	for name, want := range cases {
		got := Resolve(&ast.NamedType{Name: name}, nil)
		if got.Tag != want.Tag {
			t.Errorf("Resolve(%q).Tag = %v, want %v", name, got.Tag, want.Tag)
		}
	}
}

func TestResolveGenericParamBecomesAny(t *testing.T) {
	got := Resolve(&ast.NamedType{Name: "T"}, map[string]bool{"T": true})
	if got.Tag != Any {
		t.Errorf("Resolve(T) with T generic = %v, want Any", got.Tag)
	}
}

func TestResolveUnknownNameBecomesStructNamed(t *testing.T) {
	got := Resolve(&ast.NamedType{Name: "Point"}, nil)
	if got.Tag != TStruct || got.StructName != "Point" {
		t.Errorf("Resolve(Point) = %+v, want TStruct Point", got)
	}
}

func TestResolveNullableWraps(t *testing.T) {
	got := Resolve(&ast.NamedType{Name: "int", Nullable: true}, nil)
	if got.Tag != TNullable || got.Inner.Tag != TInt {
		t.Errorf("Resolve(int?) = %+v, want TNullable(int)", got)
	}
}

func TestResolveListAndDictTypes(t *testing.T) {
	lt := Resolve(&ast.ListType{Elem: &ast.NamedType{Name: "int"}}, nil)
	if lt.Tag != TList || lt.Elem.Tag != TInt {
		t.Errorf("Resolve(List<int>) = %+v", lt)
	}

	dt := Resolve(&ast.DictType{Key: &ast.NamedType{Name: "string"}, Value: &ast.NamedType{Name: "bool"}}, nil)
	if dt.Tag != TDict || dt.Key.Tag != TString || dt.Val.Tag != TBool {
		t.Errorf("Resolve(Dict<string, bool>) = %+v", dt)
	}
}

func TestResolveUnionType(t *testing.T) {
	ut := Resolve(&ast.UnionType{Members: []ast.TypeExpr{
		&ast.NamedType{Name: "int"},
		&ast.NamedType{Name: "string"},
	}}, nil)
	if ut.Tag != TUnion || len(ut.Members) != 2 {
		t.Errorf("Resolve(int | string) = %+v", ut)
	}
}

func TestResolveNilIsAny(t *testing.T) {
	if Resolve(nil, nil).Tag != Any {
		t.Error("Resolve(nil) should be Any")
	}
}
