package value

import (
	"testing"

	"github.com/b-macker/NAAb-sub013/internal/ast"
)

func TestKindStringNames(t *testing.T) {
	cases := map[Kind]string{
		KindNull:          "null",
		KindInt:           "int",
		KindFloat:         "float",
		KindBool:          "bool",
		KindString:        "string",
		KindList:          "list",
		KindDict:          "dict",
		KindStruct:        "struct",
		KindFunction:      "function",
		KindRange:         "range",
		KindForeignHandle: "foreign",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestScalarStringFormatting(t *testing.T) {
	if got := (Int{Value: 42}).String(); got != "42" {
		t.Errorf("Int.String() = %q", got)
	}
	if got := (Float{Value: 1.5}).String(); got != "1.5" {
		t.Errorf("Float.String() = %q", got)
	}
	if got := (Bool{Value: true}).String(); got != "true" {
		t.Errorf("Bool(true).String() = %q", got)
	}
	if got := (Bool{Value: false}).String(); got != "false" {
		t.Errorf("Bool(false).String() = %q", got)
	}
	if got := (String{Value: "hi"}).String(); got != "hi" {
		t.Errorf("String.String() = %q", got)
	}
	if got := NullValue.String(); got != "null" {
		t.Errorf("NullValue.String() = %q", got)
	}
}

func TestListStringQuotesNestedStrings(t *testing.T) {
	l := NewList(Int{Value: 1}, String{Value: "a"})
	if got := l.String(); got != `[1, "a"]` {
		t.Errorf("List.String() = %q", got)
	}
}

func TestListChildrenExposesElements(t *testing.T) {
	l := NewList(Int{Value: 1}, Int{Value: 2})
	children := l.Children()
	if len(children) != 2 {
		t.Fatalf("Children() = %v, want 2 elements", children)
	}
}

func TestDictSetGetDeleteAndInsertionOrder(t *testing.T) {
	d := NewDict()
	d.Set(String{Value: "b"}, Int{Value: 2})
	d.Set(String{Value: "a"}, Int{Value: 1})

	if v, ok := d.Get(String{Value: "a"}); !ok || v.(Int).Value != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}

	var order []string
	d.Range(func(k, _ Value) bool {
		order = append(order, k.(String).Value)
		return true
	})
	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Errorf("insertion order = %v, want [b a]", order)
	}

	if !d.Delete(String{Value: "b"}) {
		t.Fatal("Delete(b) = false, want true")
	}
	if d.Len() != 1 {
		t.Errorf("Len() after delete = %d, want 1", d.Len())
	}
	if d.Delete(String{Value: "nope"}) {
		t.Error("Delete of a missing key returned true")
	}
}

func TestDictSetRejectsUnhashableKey(t *testing.T) {
	d := NewDict()
	if d.Set(NewList(), Int{Value: 1}) {
		t.Error("Set with a list key should fail, lists are not hashable")
	}
}

func TestDictStringFormatsEntries(t *testing.T) {
	d := NewDict()
	d.Set(String{Value: "x"}, Int{Value: 1})
	if got, want := d.String(), `{"x": 1}`; got != want {
		t.Errorf("Dict.String() = %q, want %q", got, want)
	}
}

func TestDictChildrenIncludesKeysAndValues(t *testing.T) {
	d := NewDict()
	d.Set(String{Value: "x"}, Int{Value: 1})
	children := d.Children()
	if len(children) != 2 {
		t.Fatalf("Children() = %v, want 2 entries (key + value)", children)
	}
}

func TestRangeStringRespectsInclusivity(t *testing.T) {
	if got := (Range{Start: 1, End: 3, Inclusive: true}).String(); got != "1..=3" {
		t.Errorf("inclusive range = %q", got)
	}
	if got := (Range{Start: 1, End: 3}).String(); got != "1..3" {
		t.Errorf("exclusive range = %q", got)
	}
}

func TestRangeIterateExclusiveStopsBeforeEnd(t *testing.T) {
	var got []int64
	(Range{Start: 0, End: 3}).Iterate(func(i int64) bool {
		got = append(got, i)
		return true
	})
	if len(got) != 3 || got[2] != 2 {
		t.Errorf("exclusive iterate = %v, want [0 1 2]", got)
	}
}

func TestRangeIterateInclusiveIncludesEnd(t *testing.T) {
	var got []int64
	(Range{Start: 0, End: 3, Inclusive: true}).Iterate(func(i int64) bool {
		got = append(got, i)
		return true
	})
	if len(got) != 4 || got[3] != 3 {
		t.Errorf("inclusive iterate = %v, want [0 1 2 3]", got)
	}
}

func TestRangeIterateStopsEarlyWhenCallbackReturnsFalse(t *testing.T) {
	var got []int64
	(Range{Start: 0, End: 10}).Iterate(func(i int64) bool {
		got = append(got, i)
		return i < 2
	})
	if len(got) != 3 {
		t.Errorf("iterate with early stop visited %v, want 3 values", got)
	}
}

func TestIsTruthy(t *testing.T) {
	truthy := []Value{
		Bool{Value: true}, Int{Value: 1}, Float{Value: 0.1},
		String{Value: "x"}, NewList(Int{Value: 1}),
	}
	for _, v := range truthy {
		if !IsTruthy(v) {
			t.Errorf("IsTruthy(%v) = false, want true", v)
		}
	}

	falsy := []Value{
		NullValue, Bool{Value: false}, Int{Value: 0}, Float{Value: 0},
		String{Value: ""}, NewList(), NewDict(),
	}
	for _, v := range falsy {
		if IsTruthy(v) {
			t.Errorf("IsTruthy(%v) = true, want false", v)
		}
	}
}

func TestTypeNameUsesStructDefName(t *testing.T) {
	def := &StructDef{Name: "Point"}
	s := &Struct{Def: def}
	if got := TypeName(s); got != "Point" {
		t.Errorf("TypeName(struct) = %q, want Point", got)
	}
	if got := TypeName(Int{Value: 1}); got != "int" {
		t.Errorf("TypeName(int) = %q, want int", got)
	}
}

func TestTypeNameForeignHandleIncludesLanguage(t *testing.T) {
	h := &ForeignHandle{Language: "python"}
	if got := TypeName(h); got != "foreign<python>" {
		t.Errorf("TypeName(foreign) = %q", got)
	}
}

func TestFunctionStringIncludesNameAndTypedParams(t *testing.T) {
	f := &Function{
		Name:   "add",
		Params: []ast.Param{{Name: "a", Type: &ast.NamedType{Name: "int"}}, {Name: "b"}},
	}
	if got, want := f.String(), "fn add(a: int, b)"; got != want {
		t.Errorf("Function.String() = %q, want %q", got, want)
	}
}

func TestFunctionStringUsesLambdaPlaceholderWhenUnnamed(t *testing.T) {
	f := &Function{}
	if got := f.String(); got != "fn <lambda>()" {
		t.Errorf("unnamed Function.String() = %q", got)
	}
}

func TestFunctionChildrenExposesCapturedEnvironment(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", Int{Value: 1})
	f := &Function{Env: env}
	children := f.Children()
	if len(children) != 1 || children[0].(Int).Value != 1 {
		t.Errorf("Children() = %v, want captured x=1", children)
	}
}

func TestFunctionChildrenNilEnvReturnsNil(t *testing.T) {
	f := &Function{}
	if got := f.Children(); got != nil {
		t.Errorf("Children() with nil env = %v, want nil", got)
	}
}

func TestFunctionSpecializationCache(t *testing.T) {
	f := &Function{}
	if _, ok := f.CachedSpecialization("k"); ok {
		t.Fatal("expected no cached specialization before any is stored")
	}
	args := []ast.TypeExpr{&ast.NamedType{Name: "int"}}
	f.CacheSpecialization("k", args)
	got, ok := f.CachedSpecialization("k")
	if !ok || len(got) != 1 {
		t.Fatalf("CachedSpecialization(k) = %v, %v", got, ok)
	}
}

func TestBuiltinStringAndKind(t *testing.T) {
	b := &Builtin{Name: "len"}
	if b.Kind() != KindFunction {
		t.Errorf("Builtin.Kind() = %v, want KindFunction", b.Kind())
	}
	if got := b.String(); got != "<builtin len>" {
		t.Errorf("Builtin.String() = %q", got)
	}
}
