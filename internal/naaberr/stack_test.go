package naaberr

import (
	"testing"

	"github.com/b-macker/NAAb-sub013/internal/token"
)

func TestStackFrameStringWithAndWithoutPosition(t *testing.T) {
	noPos := StackFrame{FunctionName: "main"}
	if noPos.String() != "at main" {
		t.Errorf("String() = %q, want %q", noPos.String(), "at main")
	}

	withPos := StackFrame{FunctionName: "f", Pos: token.Position{File: "a.naab", Line: 3, Column: 1}}
	want := "at f (a.naab:3:1)"
	if withPos.String() != want {
		t.Errorf("String() = %q, want %q", withPos.String(), want)
	}
}

func TestStackTraceTop(t *testing.T) {
	var empty StackTrace
	if empty.Top() != nil {
		t.Error("expected Top() of an empty trace to be nil")
	}

	st := StackTrace{{FunctionName: "a"}, {FunctionName: "b"}}
	top := st.Top()
	if top == nil || top.FunctionName != "b" {
		t.Errorf("Top() = %v, want frame b", top)
	}
}

func TestStackTraceStringJoinsFrames(t *testing.T) {
	st := StackTrace{{FunctionName: "a"}, {FunctionName: "b"}}
	want := "at a\nat b"
	if st.String() != want {
		t.Errorf("String() = %q, want %q", st.String(), want)
	}
}
