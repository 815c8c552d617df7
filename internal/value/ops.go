package value

// OpError is returned by the arithmetic/comparison helpers below when an
// operation is applied to incompatible operands; internal/eval wraps it
// into a NaabError of type "TypeError".
type OpError struct {
	Op  string
	Msg string
}

func (e *OpError) Error() string { return e.Msg }

// Add implements NAAb's `+` rule: float if either operand is float,
// int if both are int, string concatenation for two strings, and list
// concatenation for two lists.
func Add(l, r Value) (Value, error) {
	switch lv := l.(type) {
	case Int:
		switch rv := r.(type) {
		case Int:
			return Int{Value: lv.Value + rv.Value}, nil
		case Float:
			return Float{Value: float64(lv.Value) + rv.Value}, nil
		}
	case Float:
		switch rv := r.(type) {
		case Int:
			return Float{Value: lv.Value + float64(rv.Value)}, nil
		case Float:
			return Float{Value: lv.Value + rv.Value}, nil
		}
	case String:
		if rv, ok := r.(String); ok {
			return String{Value: lv.Value + rv.Value}, nil
		}
	case *List:
		if rv, ok := r.(*List); ok {
			elems := make([]Value, 0, len(lv.Elements)+len(rv.Elements))
			elems = append(elems, lv.Elements...)
			elems = append(elems, rv.Elements...)
			return &List{Elements: elems}, nil
		}
	}
	return nil, &OpError{Op: "+", Msg: "cannot add " + TypeName(l) + " and " + TypeName(r)}
}

// arith applies one of -, *, /, % to two numeric operands under the same
// int/float widening rule as Add.
func arith(op string, l, r Value, onInt func(a, b int64) (int64, error), onFloat func(a, b float64) float64) (Value, error) {
	switch lv := l.(type) {
	case Int:
		switch rv := r.(type) {
		case Int:
			res, err := onInt(lv.Value, rv.Value)
			if err != nil {
				return nil, err
			}
			return Int{Value: res}, nil
		case Float:
			return Float{Value: onFloat(float64(lv.Value), rv.Value)}, nil
		}
	case Float:
		switch rv := r.(type) {
		case Int:
			return Float{Value: onFloat(lv.Value, float64(rv.Value))}, nil
		case Float:
			return Float{Value: onFloat(lv.Value, rv.Value)}, nil
		}
	}
	return nil, &OpError{Op: op, Msg: "cannot apply " + op + " to " + TypeName(l) + " and " + TypeName(r)}
}

// DivisionByZero is returned by Div/Mod on integer division/modulo by
// zero; internal/eval maps it to NaabError type "DivisionByZero".
var DivisionByZero = &OpError{Op: "/", Msg: "division by zero"}

func Sub(l, r Value) (Value, error) {
	return arith("-", l, r,
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) float64 { return a - b })
}

func Mul(l, r Value) (Value, error) {
	return arith("*", l, r,
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) float64 { return a * b })
}

func Div(l, r Value) (Value, error) {
	return arith("/", l, r,
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, DivisionByZero
			}
			return a / b, nil
		},
		func(a, b float64) float64 { return a / b })
}

func Mod(l, r Value) (Value, error) {
	return arith("%", l, r,
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, DivisionByZero
			}
			return a % b, nil
		},
		func(a, b float64) float64 {
			// float modulo via math.Mod would pull in "math"; b==0 yields
			// 0 (where math.Mod would give NaN) rather than an error, since
			// only integer operands raise DivisionByZero.
			if b == 0 {
				return 0
			}
			q := float64(int64(a / b))
			return a - q*b
		})
}

// Equal implements NAAb's structural/identity equality rules.
func Equal(l, r Value) bool {
	switch lv := l.(type) {
	case Null:
		_, ok := r.(Null)
		return ok
	case Int:
		switch rv := r.(type) {
		case Int:
			return lv.Value == rv.Value
		case Float:
			return float64(lv.Value) == rv.Value
		}
		return false
	case Float:
		switch rv := r.(type) {
		case Int:
			return lv.Value == float64(rv.Value)
		case Float:
			return lv.Value == rv.Value
		}
		return false
	case Bool:
		rv, ok := r.(Bool)
		return ok && lv.Value == rv.Value
	case String:
		rv, ok := r.(String)
		return ok && lv.Value == rv.Value
	case *List:
		rv, ok := r.(*List)
		if !ok || len(lv.Elements) != len(rv.Elements) {
			return false
		}
		for i := range lv.Elements {
			if !Equal(lv.Elements[i], rv.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		rv, ok := r.(*Dict)
		if !ok || lv.Len() != rv.Len() {
			return false
		}
		equal := true
		lv.Range(func(k, v Value) bool {
			rvVal, found := rv.Get(k)
			if !found || !Equal(v, rvVal) {
				equal = false
				return false
			}
			return true
		})
		return equal
	case *Struct:
		rv, ok := r.(*Struct)
		if !ok {
			return false
		}
		if lv == rv {
			return true
		}
		if lv.Def == nil || rv.Def == nil || lv.Def != rv.Def {
			return false
		}
		for i := range lv.Values {
			if !Equal(lv.Values[i], rv.Values[i]) {
				return false
			}
		}
		return true
	case *Function:
		rv, ok := r.(*Function)
		return ok && lv == rv
	default:
		return false
	}
}

// Compare orders two numeric or string operands for <, <=, >, >=.
// Returns an OpError for any other operand kinds.
func Compare(l, r Value) (int, error) {
	switch lv := l.(type) {
	case Int:
		switch rv := r.(type) {
		case Int:
			return cmpInt64(lv.Value, rv.Value), nil
		case Float:
			return cmpFloat64(float64(lv.Value), rv.Value), nil
		}
	case Float:
		switch rv := r.(type) {
		case Int:
			return cmpFloat64(lv.Value, float64(rv.Value)), nil
		case Float:
			return cmpFloat64(lv.Value, rv.Value), nil
		}
	case String:
		if rv, ok := r.(String); ok {
			switch {
			case lv.Value < rv.Value:
				return -1, nil
			case lv.Value > rv.Value:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, &OpError{Op: "compare", Msg: "cannot compare " + TypeName(l) + " and " + TypeName(r)}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
