package eval

import (
	"bytes"
	"context"
	"testing"

	"github.com/b-macker/NAAb-sub013/internal/gc"
	"github.com/b-macker/NAAb-sub013/internal/lexer"
	"github.com/b-macker/NAAb-sub013/internal/naaberr"
	"github.com/b-macker/NAAb-sub013/internal/parser"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// runSource parses and evaluates src in a fresh global environment with
// builtins registered, returning the program's result and any captured
// stdout.
func runSource(t *testing.T, src string) (value.Value, string, error) {
	t.Helper()
	prog, errs := parser.New(lexer.New(src, "<test>")).ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	var out bytes.Buffer
	e := New(Config{GC: gc.New(1000), Out: &out})
	env := value.NewEnvironment()
	e.RegisterBuiltins(env)

	result, err := e.Run(context.Background(), prog, env)
	return result, out.String(), err
}

func mustRun(t *testing.T, src string) value.Value {
	t.Helper()
	v, _, err := runSource(t, src)
	if err != nil {
		t.Fatalf("runSource(%q): %v", src, err)
	}
	return v
}

func TestArithmeticAndComparison(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3;":      "7",
		"(1 + 2) * 3;":    "9",
		"7 / 2;":          "3",
		"7 % 2;":          "1",
		"1 < 2;":          "true",
		"\"a\" == \"a\";": "true",
	}
	for src, want := range cases {
		if got := mustRun(t, src).String(); got != want {
			t.Errorf("%q = %q, want %q", src, got, want)
		}
	}
}

func TestLetAndAssignAndScoping(t *testing.T) {
	v := mustRun(t, `
		let x = 1;
		{
			let x = 2;
			x = x + 1;
		}
		x;
	`)
	if v.String() != "1" {
		t.Errorf("expected outer x to be unaffected by the inner shadow, got %s", v.String())
	}
}

func TestAssignToUndeclaredNameIsNameError(t *testing.T) {
	_, _, err := runSource(t, "x = 1;")
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypeNameError {
		t.Fatalf("expected a NameError, got %v", err)
	}
}

func TestIfElse(t *testing.T) {
	v := mustRun(t, `
		fn classify(n) {
			if (n < 0) {
				return "negative";
			} else if (n == 0) {
				return "zero";
			} else {
				return "positive";
			}
		}
		classify(-5);
	`)
	if v.String() != "negative" {
		t.Errorf("classify(-5) = %s", v.String())
	}
}

func TestWhileLoopWithBreakAndContinue(t *testing.T) {
	v := mustRun(t, `
		let total = 0;
		let i = 0;
		while (i < 10) {
			i = i + 1;
			if (i % 2 == 0) {
				continue;
			}
			if (i > 7) {
				break;
			}
			total = total + i;
		}
		total;
	`)
	if v.String() != "16" {
		t.Errorf("total = %s, want 16 (1+3+5+7)", v.String())
	}
}

func TestForInOverRangeListAndString(t *testing.T) {
	v := mustRun(t, `
		let sum = 0;
		for i in 1..=3 {
			sum = sum + i;
		}
		sum;
	`)
	if v.String() != "6" {
		t.Errorf("range sum = %s, want 6", v.String())
	}

	v = mustRun(t, `
		let sum = 0;
		for x in [10, 20, 30] {
			sum = sum + x;
		}
		sum;
	`)
	if v.String() != "60" {
		t.Errorf("list sum = %s, want 60", v.String())
	}

	v = mustRun(t, `
		let count = 0;
		for c in "abc" {
			count = count + 1;
		}
		count;
	`)
	if v.String() != "3" {
		t.Errorf("string iteration count = %s, want 3", v.String())
	}
}

func TestRecursiveAndMutualFunctions(t *testing.T) {
	v := mustRun(t, `
		fn fact(n) {
			if (n <= 1) {
				return 1;
			}
			return n * fact(n - 1);
		}
		fact(5);
	`)
	if v.String() != "120" {
		t.Errorf("fact(5) = %s, want 120", v.String())
	}

	v = mustRun(t, `
		fn isEven(n) {
			if (n == 0) { return true; }
			return isOdd(n - 1);
		}
		fn isOdd(n) {
			if (n == 0) { return false; }
			return isEven(n - 1);
		}
		isEven(10);
	`)
	if v.String() != "true" {
		t.Errorf("isEven(10) = %s, want true (forward reference via hoisting)", v.String())
	}
}

func TestLambdaClosureCapturesEnclosingScope(t *testing.T) {
	v := mustRun(t, `
		fn makeAdder(n) {
			return |x| x + n;
		}
		let add5 = makeAdder(5);
		add5(10);
	`)
	if v.String() != "15" {
		t.Errorf("add5(10) = %s, want 15", v.String())
	}
}

func TestArityErrorOnWrongArgCount(t *testing.T) {
	_, _, err := runSource(t, `
		fn f(a, b) { return a + b; }
		f(1);
	`)
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypeArityError {
		t.Fatalf("expected an ArityError, got %v", err)
	}
}

func TestTypedParamRejectsMismatchedArgument(t *testing.T) {
	_, _, err := runSource(t, `
		fn f(a: int) { return a; }
		f("not an int");
	`)
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypeTypeError {
		t.Fatalf("expected a TypeError, got %v", err)
	}
}

func TestStructLiteralFieldAccessAndMutation(t *testing.T) {
	v := mustRun(t, `
		struct Point { x: int, y: int }
		let p = new Point { x: 1, y: 2 };
		p.x = p.x + p.y;
		p.x;
	`)
	if v.String() != "3" {
		t.Errorf("p.x = %s, want 3", v.String())
	}
}

func TestStructLiteralDefaultsAndUnknownFieldRejected(t *testing.T) {
	v := mustRun(t, `
		struct Config { verbose: bool = false }
		let c = new Config {};
		c.verbose;
	`)
	if v.String() != "false" {
		t.Errorf("c.verbose = %s, want false", v.String())
	}

	_, _, err := runSource(t, `
		struct Config { verbose: bool = false }
		new Config { nope: true };
	`)
	if err == nil {
		t.Fatal("expected an error constructing an unknown field")
	}
}

func TestTryCatchFinally(t *testing.T) {
	v := mustRun(t, `
		let log = "";
		try {
			throw "boom";
		} catch (e) {
			log = log + "caught:" + e["message"];
		} finally {
			log = log + ":done";
		}
		log;
	`)
	if v.String() != "caught:boom:done" {
		t.Errorf("log = %s", v.String())
	}
}

func TestDivisionByZeroRaisesAndIsCatchable(t *testing.T) {
	v := mustRun(t, `
		let result = "";
		try {
			1 / 0;
		} catch (e) {
			result = e["type"];
		}
		result;
	`)
	if v.String() != "DivisionByZero" {
		t.Errorf("result = %s, want DivisionByZero", v.String())
	}
}

func TestPipelineExprDesugarsToFirstArgument(t *testing.T) {
	v := mustRun(t, `
		fn double(x) { return x * 2; }
		fn inc(x) { return x + 1; }
		5 |> double() |> inc();
	`)
	if v.String() != "11" {
		t.Errorf("pipeline result = %s, want 11", v.String())
	}
}

func TestPipelineEvaluatesLeftOperandExactlyOnce(t *testing.T) {
	v := mustRun(t, `
		let calls = 0;
		fn sideEffecting() {
			calls = calls + 1;
			return 10;
		}
		fn identity(x) { return x; }
		sideEffecting() |> identity();
		calls;
	`)
	if v.String() != "1" {
		t.Errorf("calls = %s, want 1", v.String())
	}
}

func TestCallingNonFunctionIsTypeError(t *testing.T) {
	_, _, err := runSource(t, `
		let x = 1;
		x();
	`)
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypeTypeError {
		t.Fatalf("expected a TypeError calling a non-function, got %v", err)
	}
}

func TestIndexOutOfRangeIsRangeError(t *testing.T) {
	_, _, err := runSource(t, `
		let xs = [1, 2];
		xs[5];
	`)
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypeRangeError {
		t.Fatalf("expected a RangeError, got %v", err)
	}
}

func TestUndefinedStructIsNameError(t *testing.T) {
	_, _, err := runSource(t, `new Nope {};`)
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypeNameError {
		t.Fatalf("expected a NameError for an undeclared struct, got %v", err)
	}
}

func TestMaxCallDepthRaisesInternalError(t *testing.T) {
	e := New(Config{GC: gc.New(1000), MaxCallDepth: 5})
	env := value.NewEnvironment()
	e.RegisterBuiltins(env)

	prog, errs := parser.New(lexer.New(`
		fn recurse(n) { return recurse(n + 1); }
		recurse(0);
	`, "<test>")).ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	_, err := e.Run(context.Background(), prog, env)
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypeInternalError {
		t.Fatalf("expected an InternalError at max call depth, got %v", err)
	}
}

func TestGenericStructSpecialization(t *testing.T) {
	v := mustRun(t, `
		struct Box<T> { value: T }
		let a = new Box<int> { value: 1 };
		let b = new Box<string> { value: "x" };
		a.value + 1;
	`)
	if v.String() != "2" {
		t.Errorf("a.value + 1 = %s, want 2", v.String())
	}
}

func TestUseWithoutModuleLoaderIsModuleError(t *testing.T) {
	_, _, err := runSource(t, `use "something";`)
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypeModuleError {
		t.Fatalf("expected a ModuleError, got %v", err)
	}
}

func TestPolyglotBlockWithoutRunnerIsPolyglotError(t *testing.T) {
	_, _, err := runSource(t, "<<python[]\nresult = 1\n>>;")
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypePolyglotError {
		t.Fatalf("expected a PolyglotError, got %v", err)
	}
}
