package polyglot

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/b-macker/NAAb-sub013/internal/value"
)

// valueToJSONAny converts a Value into the plain Go types
// encoding/json.Marshal understands, for building the stdin envelope an
// adapter's language-specific preamble parses into native bindings,
// using each language's native representation.
func valueToJSONAny(v value.Value) (any, error) {
	switch val := v.(type) {
	case value.Null:
		return nil, nil
	case value.Int:
		return val.Value, nil
	case value.Float:
		return val.Value, nil
	case value.Bool:
		return val.Value, nil
	case value.String:
		return val.Value, nil
	case *value.List:
		out := make([]any, len(val.Elements))
		for i, e := range val.Elements {
			conv, err := valueToJSONAny(e)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case *value.Dict:
		out := make(map[string]any, val.Len())
		var convErr error
		val.Range(func(k, v value.Value) bool {
			ks, ok := k.(value.String)
			if !ok {
				convErr = fmt.Errorf("dict key %s cannot be marshalled to a polyglot block: only string keys are supported", value.TypeName(k))
				return false
			}
			conv, err := valueToJSONAny(v)
			if err != nil {
				convErr = err
				return false
			}
			out[ks.Value] = conv
			return true
		})
		if convErr != nil {
			return nil, convErr
		}
		return out, nil
	case *value.Struct:
		out := make(map[string]any, len(val.Values))
		if val.Def != nil {
			for i, f := range val.Def.Fields {
				conv, err := valueToJSONAny(val.Values[i])
				if err != nil {
					return nil, err
				}
				out[f.Name] = conv
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value of type %s cannot be marshalled into a polyglot block", value.TypeName(v))
	}
}

// bindingsToJSON renders bindings as a single JSON object, so a single
// stdin read on the subprocess side yields every injected variable.
func bindingsToJSON(bindings map[string]value.Value) (string, error) {
	obj := make(map[string]any, len(bindings))
	for name, v := range bindings {
		conv, err := valueToJSONAny(v)
		if err != nil {
			return "", err
		}
		obj[name] = conv
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// jsonToValue converts the JSON text a block prints back (the
// `{"value": ...}` return-value envelope) into a Value. Decoding goes
// through gjson rather than encoding/json so a malformed trailing
// envelope doesn't require a second full unmarshal pass to diagnose —
// gjson.Valid is checked up front and ForEach walks containers lazily.
func jsonToValue(raw string) (value.Value, error) {
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON result envelope: %s", raw)
	}
	envelope := gjson.Parse(raw)
	result := envelope.Get("value")
	return gjsonToValue(result), nil
}

func gjsonToValue(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.NullValue
	case gjson.True, gjson.False:
		return value.Bool{Value: r.Bool()}
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) && !containsDot(r.Raw) {
			return value.Int{Value: int64(r.Num)}
		}
		return value.Float{Value: r.Num}
	case gjson.String:
		return value.String{Value: r.Str}
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(v))
				return true
			})
			return value.NewList(elems...)
		}
		d := value.NewDict()
		r.ForEach(func(k, v gjson.Result) bool {
			d.Set(value.String{Value: k.String()}, gjsonToValue(v))
			return true
		})
		return d
	default:
		return value.NullValue
	}
}

func containsDot(raw string) bool {
	for _, c := range raw {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}
