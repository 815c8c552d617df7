package value

import (
	"fmt"
	"strings"
	"sync"

	"github.com/b-macker/NAAb-sub013/internal/ast"
)

// FieldDef is one field of a StructDef: name, declared type, and whether a
// default initializer exists (the initializer itself is evaluated by
// internal/eval, which owns the AST; StructDef only needs to know whether
// one was declared, for arity checks on a bare `new Name{}`).
type FieldDef struct {
	Name       string
	Type       any // an internal/rtype.Type, stored as any to avoid an import cycle
	HasDefault bool
	Default    ast.Expression // nil if HasDefault is false
}

// StructDef is the definition backing every Struct value of a given name.
// Specialized generic forms (`Base_T1_T2`) are cached so repeated
// instantiation with identical type arguments yields the same
// *StructDef pointer.
type StructDef struct {
	Name          string
	Fields        []FieldDef
	GenericParams []string

	mu             sync.Mutex
	specializedOf  *StructDef
	specializeArgs []string
	cache          map[string]*StructDef
}

// NewStructDef creates a StructDef for a non-generic or generic-template
// struct declaration.
func NewStructDef(name string, fields []FieldDef, genericParams []string) *StructDef {
	return &StructDef{
		Name:          name,
		Fields:        fields,
		GenericParams: genericParams,
	}
}

// FieldIndex returns the index of the named field, or -1.
func (d *StructDef) FieldIndex(name string) int {
	for i, f := range d.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Specialize produces the StructDef for this generic template bound with
// the given type-argument names (their canonical string form), caching by
// that argument tuple so the same arguments always return the same
// pointer.
func (d *StructDef) Specialize(typeArgNames []string, fieldTypes []any) *StructDef {
	if len(d.GenericParams) == 0 {
		return d
	}
	key := strings.Join(typeArgNames, ",")

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cache == nil {
		d.cache = make(map[string]*StructDef)
	}
	if existing, ok := d.cache[key]; ok {
		return existing
	}

	fields := make([]FieldDef, len(d.Fields))
	copy(fields, d.Fields)
	for i := range fields {
		if i < len(fieldTypes) && fieldTypes[i] != nil {
			fields[i].Type = fieldTypes[i]
		}
	}

	specialized := &StructDef{
		Name:           fmt.Sprintf("%s_%s", d.Name, strings.Join(typeArgNames, "_")),
		Fields:         fields,
		specializedOf:  d,
		specializeArgs: typeArgNames,
	}
	d.cache[key] = specialized
	return specialized
}

// MatchesName reports whether this definition's internal name equals name
// or is a specialization of it: `Struct<name>` matches the exact name or
// any `name_...` specialization.
func (d *StructDef) MatchesName(name string) bool {
	if d.Name == name {
		return true
	}
	return strings.HasPrefix(d.Name, name+"_")
}

// Struct is a named record instance bound to a StructDef. The
// definition's field count must equal len(Values).
type Struct struct {
	Def    *StructDef
	Values []Value
}

// NewStruct allocates a Struct instance for def with the given field
// values, which must already be in declaration order.
func NewStruct(def *StructDef, values []Value) *Struct {
	return &Struct{Def: def, Values: values}
}

func (s *Struct) Kind() Kind { return KindStruct }

func (s *Struct) String() string {
	name := "struct"
	if s.Def != nil {
		name = s.Def.Name
	}
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		fieldName := fmt.Sprintf("%d", i)
		if s.Def != nil && i < len(s.Def.Fields) {
			fieldName = s.Def.Fields[i].Name
		}
		parts[i] = fmt.Sprintf("%s: %s", fieldName, inspect(v))
	}
	return fmt.Sprintf("%s { %s }", name, strings.Join(parts, ", "))
}

func (s *Struct) Children() []Value { return s.Values }

// Get returns the field value by name.
func (s *Struct) Get(name string) (Value, bool) {
	if s.Def == nil {
		return nil, false
	}
	idx := s.Def.FieldIndex(name)
	if idx < 0 || idx >= len(s.Values) {
		return nil, false
	}
	return s.Values[idx], true
}

// Set mutates the field slot in place (`obj.field = v`).
func (s *Struct) Set(name string, val Value) bool {
	if s.Def == nil {
		return false
	}
	idx := s.Def.FieldIndex(name)
	if idx < 0 || idx >= len(s.Values) {
		return false
	}
	s.Values[idx] = val
	return true
}
