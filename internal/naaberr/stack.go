package naaberr

import (
	"fmt"
	"strings"

	"github.com/b-macker/NAAb-sub013/internal/token"
)

// StackFrame is one frame of a NaabError's call stack, rendered as
// "at <fn> (<file>:<line>:<col>)".
type StackFrame struct {
	FunctionName string
	Pos          token.Position
}

// String formats the frame for display.
func (f StackFrame) String() string {
	if f.Pos == (token.Position{}) {
		return fmt.Sprintf("at %s", f.FunctionName)
	}
	return fmt.Sprintf("at %s (%s)", f.FunctionName, f.Pos.String())
}

// StackTrace is a call stack, oldest frame first.
type StackTrace []StackFrame

func (st StackTrace) String() string {
	parts := make([]string, len(st))
	for i, f := range st {
		parts[i] = f.String()
	}
	return strings.Join(parts, "\n")
}

// Top returns the most recently pushed frame, or nil if empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}
