package value

import "testing"

func TestFieldIndexFindsDeclaredFields(t *testing.T) {
	def := NewStructDef("Point", []FieldDef{{Name: "x"}, {Name: "y"}}, nil)
	if def.FieldIndex("y") != 1 {
		t.Errorf("FieldIndex(y) = %d, want 1", def.FieldIndex("y"))
	}
	if def.FieldIndex("z") != -1 {
		t.Errorf("FieldIndex(z) = %d, want -1", def.FieldIndex("z"))
	}
}

func TestStructGetAndSet(t *testing.T) {
	def := NewStructDef("Point", []FieldDef{{Name: "x"}, {Name: "y"}}, nil)
	s := NewStruct(def, []Value{Int{Value: 1}, Int{Value: 2}})

	v, ok := s.Get("x")
	if !ok || v.(Int).Value != 1 {
		t.Errorf("Get(x) = %v, %v", v, ok)
	}

	if !s.Set("y", Int{Value: 99}) {
		t.Fatal("expected Set to succeed for a declared field")
	}
	v, _ = s.Get("y")
	if v.(Int).Value != 99 {
		t.Errorf("expected y to be mutated, got %v", v)
	}

	if s.Set("nope", Int{Value: 1}) {
		t.Error("expected Set to fail for an unknown field")
	}
	if _, ok := s.Get("nope"); ok {
		t.Error("expected Get to fail for an unknown field")
	}
}

func TestSpecializeCachesByTypeArgKey(t *testing.T) {
	def := NewStructDef("Box", []FieldDef{{Name: "value"}}, []string{"T"})

	a := def.Specialize([]string{"int"}, []any{"int"})
	b := def.Specialize([]string{"int"}, []any{"int"})
	if a != b {
		t.Error("expected Specialize to return the same pointer for identical type args")
	}

	c := def.Specialize([]string{"string"}, []any{"string"})
	if a == c {
		t.Error("expected Specialize to return distinct defs for distinct type args")
	}
	if c.Name != "Box_string" {
		t.Errorf("specialized name = %q, want Box_string", c.Name)
	}
}

func TestSpecializeIsNoopForNonGenericDef(t *testing.T) {
	def := NewStructDef("Point", []FieldDef{{Name: "x"}}, nil)
	if def.Specialize([]string{"int"}, nil) != def {
		t.Error("expected Specialize on a non-generic def to return itself")
	}
}

func TestMatchesNameExactAndSpecializedPrefix(t *testing.T) {
	def := NewStructDef("Box", []FieldDef{{Name: "value"}}, []string{"T"})
	specialized := def.Specialize([]string{"int"}, []any{"int"})

	if !def.MatchesName("Box") {
		t.Error("expected template def to match its own name")
	}
	if !specialized.MatchesName("Box") {
		t.Error("expected Box_int to match the base name Box")
	}
	if specialized.MatchesName("Other") {
		t.Error("expected Box_int to not match an unrelated name")
	}
}
