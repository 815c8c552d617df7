// Package naaberr implements NAAb's exception taxonomy and error
// reporter: the structured NaabError exception value, its dict-shaped
// surface to NAAb scripts, and the Reporter that renders one for a
// terminal.
package naaberr

import (
	"fmt"

	"github.com/b-macker/NAAb-sub013/internal/token"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// Type is one of NaabError's `type` strings.
type Type string

const (
	TypeParseError      Type = "ParseError"
	TypeTypeError       Type = "TypeError"
	TypeNameError       Type = "NameError"
	TypeRangeError      Type = "RangeError"
	TypeKeyError        Type = "KeyError"
	TypeArityError      Type = "ArityError"
	TypeDivisionByZero  Type = "DivisionByZero"
	TypeModuleError     Type = "ModuleError"
	TypePolyglotError   Type = "PolyglotError"
	TypeTimeoutError    Type = "TimeoutError"
	TypeUserError       Type = "UserError"
	TypeIOError        Type = "IOError"
	TypeInternalError  Type = "NaabError"
)

// NaabError is the structured exception value. It both implements Go's
// error interface (so it can flow through internal evaluator plumbing as
// a regular error) and converts to/from the dict-shaped Value NAAb
// scripts observe in a `catch (e)` clause.
type NaabError struct {
	Message string
	Kind    Type
	Stack   StackTrace
	Pos     token.Position
}

func New(kind Type, pos token.Position, format string, args ...any) *NaabError {
	return &NaabError{Message: fmt.Sprintf(format, args...), Kind: kind, Pos: pos}
}

func (e *NaabError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// WithFrame returns a copy of e with frame appended to its stack, used as
// the evaluator unwinds call frames: stack frames are pushed on every
// call and popped on return or unwind.
func (e *NaabError) WithFrame(frame StackFrame) *NaabError {
	cp := *e
	cp.Stack = append(append(StackTrace{}, e.Stack...), frame)
	return &cp
}

// ToValue renders e as a dict-shaped Value carrying, at minimum,
// message/type/stack, indexable from script as `e["message"]`.
func (e *NaabError) ToValue() *value.Dict {
	d := value.NewDict()
	d.Set(value.String{Value: "message"}, value.String{Value: e.Message})
	d.Set(value.String{Value: "type"}, value.String{Value: string(e.Kind)})
	frames := make([]value.Value, len(e.Stack))
	for i, f := range e.Stack {
		frames[i] = value.String{Value: f.String()}
	}
	d.Set(value.String{Value: "stack"}, value.NewList(frames...))
	return d
}

// FromValue recovers a NaabError from a dict-shaped Value that already
// carries message/type/stack (used when re-catching a previously-thrown
// value, or when a caller passes a hand-built error dict to `throw`).
// ok is false if v is not NaabError-shaped. Each stack entry's leading
// "at " is stripped into FunctionName, so ToValue renders it unchanged.
func FromValue(v value.Value) (*NaabError, bool) {
	d, ok := v.(*value.Dict)
	if !ok {
		return nil, false
	}
	msgVal, hasMsg := d.Get(value.String{Value: "message"})
	typeVal, hasType := d.Get(value.String{Value: "type"})
	if !hasMsg || !hasType {
		return nil, false
	}
	msg, _ := msgVal.(value.String)
	typ, _ := typeVal.(value.String)
	ne := &NaabError{Message: msg.Value, Kind: Type(typ.Value)}
	if stackVal, ok := d.Get(value.String{Value: "stack"}); ok {
		if list, ok := stackVal.(*value.List); ok {
			for _, item := range list.Elements {
				if s, ok := item.(value.String); ok {
					name := s.Value
					if len(name) > 3 && name[:3] == "at " {
						name = name[3:]
					}
					ne.Stack = append(ne.Stack, StackFrame{FunctionName: name})
				}
			}
		}
	}
	return ne, true
}

// WrapThrown implements `throw expr` semantics: raise expr as-is if it
// is already NaabError-shaped, else wrap it as a UserError whose message
// is expr's string conversion.
func WrapThrown(v value.Value, pos token.Position) *NaabError {
	if ne, ok := FromValue(v); ok {
		return ne
	}
	return New(TypeUserError, pos, "%s", v.String())
}
