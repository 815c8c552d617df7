package eval

import (
	"fmt"

	"github.com/b-macker/NAAb-sub013/internal/value"
)

// RegisterBuiltins binds NAAb's host builtins — print, typeof,
// gc_collect, gc_stats, len, string — into env. Call once on the
// program's global environment before Run.
func (e *Evaluator) RegisterBuiltins(env *value.Environment) {
	env.Define("print", &value.Builtin{Name: "print", Fn: e.builtinPrint})
	env.Define("typeof", &value.Builtin{Name: "typeof", Fn: e.builtinTypeof})
	env.Define("gc_collect", &value.Builtin{Name: "gc_collect", Fn: e.builtinGCCollect})
	env.Define("gc_stats", &value.Builtin{Name: "gc_stats", Fn: e.builtinGCStats})
	env.Define("len", &value.Builtin{Name: "len", Fn: e.builtinLen})
	env.Define("string", &value.Builtin{Name: "string", Fn: e.builtinString})
}

func (e *Evaluator) builtinPrint(args []value.Value) (value.Value, error) {
	parts := make([]any, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprintln(e.out, parts...)
	return value.NullValue, nil
}

func (e *Evaluator) builtinTypeof(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("typeof expects 1 argument, got %d", len(args))
	}
	return value.String{Value: value.TypeName(args[0])}, nil
}

func (e *Evaluator) builtinGCCollect(args []value.Value) (value.Value, error) {
	if e.gc != nil {
		e.gc.Collect()
	}
	return value.NullValue, nil
}

// builtinGCStats exposes internal/gc.Stats as a NAAb dict: live_objects,
// allocation_count, threshold.
func (e *Evaluator) builtinGCStats(args []value.Value) (value.Value, error) {
	d := value.NewDict()
	if e.gc != nil {
		stats := e.gc.CollectStats()
		d.Set(value.String{Value: "live_objects"}, value.Int{Value: int64(stats.LiveObjects)})
		d.Set(value.String{Value: "allocation_count"}, value.Int{Value: stats.AllocationCount})
		d.Set(value.String{Value: "threshold"}, value.Int{Value: stats.Threshold})
	}
	e.register(d)
	return d, nil
}

func (e *Evaluator) builtinLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *value.List:
		return value.Int{Value: int64(len(v.Elements))}, nil
	case *value.Dict:
		return value.Int{Value: int64(v.Len())}, nil
	case value.String:
		return value.Int{Value: int64(len([]rune(v.Value)))}, nil
	default:
		return nil, fmt.Errorf("len: unsupported type %s", value.TypeName(args[0]))
	}
}

func (e *Evaluator) builtinString(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("string expects 1 argument, got %d", len(args))
	}
	return value.String{Value: args[0].String()}, nil
}
