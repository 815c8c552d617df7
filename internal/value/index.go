package value

import "fmt"

// IndexKind classifies the failure of Index, so internal/eval can map it
// to the right NaabError type (RangeError vs KeyError vs TypeError).
type IndexKind int

const (
	IndexOK IndexKind = iota
	IndexOutOfRange
	IndexKeyMissing
	IndexUnsupported
)

// IndexError is returned by Index/SetIndex on failure.
type IndexError struct {
	Kind IndexKind
	Msg  string
}

func (e *IndexError) Error() string { return e.Msg }

// Index implements NAAb's subscript rules: List[int] with bounds check,
// Dict[key] with missing-key error, String[int] returning a
// one-character string.
func Index(target, idx Value) (Value, error) {
	switch t := target.(type) {
	case *List:
		i, ok := idx.(Int)
		if !ok {
			return nil, &IndexError{Kind: IndexUnsupported, Msg: "list index must be int, got " + TypeName(idx)}
		}
		if i.Value < 0 || int(i.Value) >= len(t.Elements) {
			return nil, &IndexError{Kind: IndexOutOfRange, Msg: fmt.Sprintf("list index %d out of bounds (len %d)", i.Value, len(t.Elements))}
		}
		return t.Elements[i.Value], nil
	case *Dict:
		v, ok := t.Get(idx)
		if !ok {
			return nil, &IndexError{Kind: IndexKeyMissing, Msg: "key not found: " + idx.String()}
		}
		return v, nil
	case String:
		i, ok := idx.(Int)
		if !ok {
			return nil, &IndexError{Kind: IndexUnsupported, Msg: "string index must be int, got " + TypeName(idx)}
		}
		runes := []rune(t.Value)
		if i.Value < 0 || int(i.Value) >= len(runes) {
			return nil, &IndexError{Kind: IndexOutOfRange, Msg: fmt.Sprintf("string index %d out of bounds (len %d)", i.Value, len(runes))}
		}
		return String{Value: string(runes[i.Value])}, nil
	default:
		return nil, &IndexError{Kind: IndexUnsupported, Msg: "cannot index into " + TypeName(target)}
	}
}

// SetIndex implements `list[i] = v` (bounds-checked in-place mutation) and
// `dict[k] = v` (insert-or-update).
func SetIndex(target, idx, val Value) error {
	switch t := target.(type) {
	case *List:
		i, ok := idx.(Int)
		if !ok {
			return &IndexError{Kind: IndexUnsupported, Msg: "list index must be int, got " + TypeName(idx)}
		}
		if i.Value < 0 || int(i.Value) >= len(t.Elements) {
			return &IndexError{Kind: IndexOutOfRange, Msg: fmt.Sprintf("list index %d out of bounds (len %d)", i.Value, len(t.Elements))}
		}
		t.Elements[i.Value] = val
		return nil
	case *Dict:
		if !t.Set(idx, val) {
			return &IndexError{Kind: IndexUnsupported, Msg: "unsupported dict key type " + TypeName(idx)}
		}
		return nil
	default:
		return &IndexError{Kind: IndexUnsupported, Msg: "cannot index-assign into " + TypeName(target)}
	}
}
