package value

import "testing"

func TestEnvironmentLookupWalksParentChain(t *testing.T) {
	root := NewEnvironment()
	root.Define("x", Int{Value: 1})
	child := NewEnclosedEnvironment(root)

	v, ok := child.Lookup("x")
	if !ok || v.(Int).Value != 1 {
		t.Errorf("expected child to find parent binding, got %v, %v", v, ok)
	}
	if child.HasLocal("x") {
		t.Error("expected x to not be a local binding of child")
	}
}

func TestEnvironmentDefineShadowsLocally(t *testing.T) {
	root := NewEnvironment()
	root.Define("x", Int{Value: 1})
	child := NewEnclosedEnvironment(root)
	child.Define("x", Int{Value: 2})

	v, _ := child.Lookup("x")
	if v.(Int).Value != 2 {
		t.Errorf("expected shadowed local binding, got %v", v)
	}
	parentVal, _ := root.Lookup("x")
	if parentVal.(Int).Value != 1 {
		t.Errorf("expected parent binding untouched, got %v", parentVal)
	}
}

func TestEnvironmentAssignRequiresExistingBinding(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign("missing", Int{Value: 1}); err == nil {
		t.Error("expected Assign to fail on an unbound name")
	}
}

func TestEnvironmentAssignMutatesAncestor(t *testing.T) {
	root := NewEnvironment()
	root.Define("x", Int{Value: 1})
	child := NewEnclosedEnvironment(root)

	if err := child.Assign("x", Int{Value: 42}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	v, _ := root.Lookup("x")
	if v.(Int).Value != 42 {
		t.Errorf("expected assignment to mutate the ancestor scope, got %v", v)
	}
}

func TestSnapshotDeepCopiesListsAndDicts(t *testing.T) {
	env := NewEnvironment()
	list := NewList(Int{Value: 1})
	env.Define("xs", list)

	snap := env.Snapshot([]string{"xs"})
	snapList := snap["xs"].(*List)
	snapList.Elements[0] = Int{Value: 99}

	if list.Elements[0].(Int).Value != 1 {
		t.Error("expected Snapshot to deep-copy the list, not alias it")
	}
}

func TestSnapshotSkipsUnboundNames(t *testing.T) {
	env := NewEnvironment()
	snap := env.Snapshot([]string{"nope"})
	if len(snap) != 0 {
		t.Errorf("expected no entry for an unbound name, got %v", snap)
	}
}

func TestDeepCopyLeavesStructsAliased(t *testing.T) {
	def := NewStructDef("P", []FieldDef{{Name: "x"}}, nil)
	s := NewStruct(def, []Value{Int{Value: 1}})

	copied := DeepCopy(s)
	if copied != Value(s) {
		t.Error("expected DeepCopy to return structs as-is (reference semantics)")
	}
}
