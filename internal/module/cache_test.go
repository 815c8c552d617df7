package module

import "testing"

func TestModuleCachePutGetInvalidate(t *testing.T) {
	c := newModuleCache()
	m := &Module{Path: "/a/b.naab", Name: "b"}

	if _, ok := c.Get(m.Path); ok {
		t.Fatal("expected a miss before Put")
	}
	c.Put(m.Path, m)
	if got, ok := c.Get(m.Path); !ok || got != m {
		t.Errorf("Get = %v, %v, want %v, true", got, ok, m)
	}
	if c.Size() != 1 {
		t.Errorf("Size = %d, want 1", c.Size())
	}

	c.Invalidate(m.Path)
	if _, ok := c.Get(m.Path); ok {
		t.Error("expected a miss after Invalidate")
	}
}

func TestModuleCacheClearDropsEverything(t *testing.T) {
	c := newModuleCache()
	c.Put("a", &Module{Path: "a"})
	c.Put("b", &Module{Path: "b"})
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size after Clear = %d, want 0", c.Size())
	}
}

func TestModuleNormalizedNameLowercases(t *testing.T) {
	m := &Module{Name: "Utils"}
	if m.NormalizedName() != "utils" {
		t.Errorf("NormalizedName = %q, want utils", m.NormalizedName())
	}
}
