// Package value implements NAAb's tagged Value union and the Environment
// scope chain.
//
// Every concrete Value is a Go type implementing the Value interface: a
// small tag method plus a String method consulted everywhere a value
// needs printing.
package value

import (
	"fmt"
	"strings"
)

// Kind tags the dynamic type of a Value for fast dispatch, error messages,
// and the `typeof` builtin.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindList
	KindDict
	KindStruct
	KindFunction
	KindRange
	KindForeignHandle
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindStruct:
		return "struct"
	case KindFunction:
		return "function"
	case KindRange:
		return "range"
	case KindForeignHandle:
		return "foreign"
	default:
		return "unknown"
	}
}

// Value is implemented by every NAAb runtime value.
type Value interface {
	Kind() Kind
	String() string
}

// GCObject is implemented by every heap-allocated Value variant (List,
// Dict, Struct, Function) so the garbage collector (internal/gc) can walk
// and register them without internal/value importing internal/gc.
type GCObject interface {
	Value
	// Children returns every Value directly reachable from this object,
	// for the GC's mark phase.
	Children() []Value
}

// Null is the singleton null value.
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) String() string { return "null" }

// NullValue is the single shared Null instance; nil-ness never needs
// allocation.
var NullValue = Null{}

// Int is a 64-bit signed integer value.
type Int struct{ Value int64 }

func (v Int) Kind() Kind     { return KindInt }
func (v Int) String() string { return fmt.Sprintf("%d", v.Value) }

// Float is a 64-bit IEEE float value.
type Float struct{ Value float64 }

func (v Float) Kind() Kind     { return KindFloat }
func (v Float) String() string { return fmt.Sprintf("%g", v.Value) }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (v Bool) Kind() Kind { return KindBool }
func (v Bool) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// String is a string value.
type String struct{ Value string }

func (v String) Kind() Kind     { return KindString }
func (v String) String() string { return v.Value }

// List is an ordered, reference-shared sequence. Assignment aliases;
// mutation through any alias is observed by every other alias, which is
// why List is always handled through a pointer.
type List struct {
	Elements []Value
}

func NewList(elems ...Value) *List { return &List{Elements: elems} }

func (v *List) Kind() Kind { return KindList }
func (v *List) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = inspect(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (v *List) Children() []Value { return v.Elements }

// DictKey is the comparable projection of a Value used as a Dict key.
// Only primitives and strings have defined hashing.
type DictKey struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

// NewDictKey converts val into a DictKey, or reports ok=false if val's
// kind cannot be used as a key.
func NewDictKey(val Value) (DictKey, bool) {
	switch v := val.(type) {
	case Int:
		return DictKey{kind: KindInt, i: v.Value}, true
	case Float:
		return DictKey{kind: KindFloat, f: v.Value}, true
	case Bool:
		return DictKey{kind: KindBool, b: v.Value}, true
	case String:
		return DictKey{kind: KindString, s: v.Value}, true
	default:
		return DictKey{}, false
	}
}

func (k DictKey) ToValue() Value {
	switch k.kind {
	case KindInt:
		return Int{Value: k.i}
	case KindFloat:
		return Float{Value: k.f}
	case KindBool:
		return Bool{Value: k.b}
	case KindString:
		return String{Value: k.s}
	default:
		return NullValue
	}
}

// Dict is a keyed mapping with insertion-order iteration,
// reference-shared like List.
type Dict struct {
	keys   []DictKey
	values map[DictKey]Value
}

func NewDict() *Dict {
	return &Dict{values: make(map[DictKey]Value)}
}

func (d *Dict) Kind() Kind { return KindDict }

func (d *Dict) Get(key Value) (Value, bool) {
	k, ok := NewDictKey(key)
	if !ok {
		return nil, false
	}
	v, ok := d.values[k]
	return v, ok
}

func (d *Dict) Set(key, val Value) bool {
	k, ok := NewDictKey(key)
	if !ok {
		return false
	}
	if _, exists := d.values[k]; !exists {
		d.keys = append(d.keys, k)
	}
	d.values[k] = val
	return true
}

func (d *Dict) Delete(key Value) bool {
	k, ok := NewDictKey(key)
	if !ok {
		return false
	}
	if _, exists := d.values[k]; !exists {
		return false
	}
	delete(d.values, k)
	for i, kk := range d.keys {
		if kk == k {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

func (d *Dict) Len() int { return len(d.keys) }

// Range iterates entries in insertion order.
func (d *Dict) Range(f func(key, val Value) bool) {
	for _, k := range d.keys {
		if !f(k.ToValue(), d.values[k]) {
			return
		}
	}
}

func (d *Dict) String() string {
	parts := make([]string, 0, len(d.keys))
	d.Range(func(k, v Value) bool {
		parts = append(parts, fmt.Sprintf("%s: %s", inspect(k), inspect(v)))
		return true
	})
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d *Dict) Children() []Value {
	out := make([]Value, 0, 2*len(d.keys))
	d.Range(func(k, v Value) bool {
		out = append(out, k, v)
		return true
	})
	return out
}

// Range is a lazily-iterated integer range.
type Range struct {
	Start     int64
	End       int64
	Inclusive bool
}

func (v Range) Kind() Kind { return KindRange }
func (v Range) String() string {
	if v.Inclusive {
		return fmt.Sprintf("%d..=%d", v.Start, v.End)
	}
	return fmt.Sprintf("%d..%d", v.Start, v.End)
}

// Iterate calls f for every integer in the range, stopping early if f
// returns false.
func (v Range) Iterate(f func(int64) bool) {
	if v.Inclusive {
		for i := v.Start; i <= v.End; i++ {
			if !f(i) {
				return
			}
		}
		return
	}
	for i := v.Start; i < v.End; i++ {
		if !f(i) {
			return
		}
	}
}

// ForeignHandle wraps an opaque value a polyglot adapter could not fully
// marshal back into a Value.
type ForeignHandle struct {
	Language string
	Handle   any
}

func (v *ForeignHandle) Kind() Kind     { return KindForeignHandle }
func (v *ForeignHandle) String() string { return fmt.Sprintf("<foreign %s handle>", v.Language) }

// inspect renders a value the way it would appear nested inside a List or
// Dict's String() — strings get quotes so `["a", "b"]` round-trips legibly.
func inspect(v Value) string {
	if s, ok := v.(String); ok {
		return fmt.Sprintf("%q", s.Value)
	}
	return v.String()
}

// IsTruthy reports whether v is considered true in a boolean context:
// non-zero numeric, non-empty string, true, non-null, non-empty
// list/dict.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case Null:
		return false
	case Bool:
		return val.Value
	case Int:
		return val.Value != 0
	case Float:
		return val.Value != 0
	case String:
		return val.Value != ""
	case *List:
		return len(val.Elements) > 0
	case *Dict:
		return val.Len() > 0
	default:
		return true
	}
}

// TypeName returns the Kind string, or the struct's declared name for
// Struct values (used by TypeError messages and `typeof`).
func TypeName(v Value) string {
	if s, ok := v.(*Struct); ok && s.Def != nil {
		return s.Def.Name
	}
	if f, ok := v.(*ForeignHandle); ok {
		return "foreign<" + f.Language + ">"
	}
	return v.Kind().String()
}
