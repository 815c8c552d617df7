package naaberr

import (
	"fmt"
	"strings"
)

// Reporter renders a NaabError as a multi-line diagnostic: a header with
// severity and message, an arrow line with file:line:col, two
// source-context lines with a caret underline, and zero or more help
// lines.
type Reporter struct {
	// Color enables ANSI escapes in the rendered report (NAAB_COLOR=0
	// disables this).
	Color bool
	// InScopeNames supplies identifiers currently bound, for NameError
	// fuzzy-match suggestions.
	InScopeNames []string
	// StdlibModules supplies known standard-library module names, for
	// `use <name>` suggestions on an unresolved identifier that happens
	// to match one.
	StdlibModules []string
}

const (
	ansiRed   = "\033[1;31m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// Render formats err with source context drawn from source.
func (r *Reporter) Render(err *NaabError, source, file string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %s\n", err.Kind, err.Message)
	if file != "" {
		fmt.Fprintf(&sb, "  --> %s:%d:%d\n", file, err.Pos.Line, err.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "  --> %d:%d\n", err.Pos.Line, err.Pos.Column)
	}

	lines := strings.Split(source, "\n")
	if err.Pos.Line >= 1 && err.Pos.Line <= len(lines) {
		lineNumStr := fmt.Sprintf("%4d | ", err.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(lines[err.Pos.Line-1])
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)))
		col := err.Pos.Column - 1
		if col < 0 {
			col = 0
		}
		sb.WriteString(strings.Repeat(" ", col))
		if r.Color {
			sb.WriteString(ansiRed)
		}
		sb.WriteString("^")
		if r.Color {
			sb.WriteString(ansiReset)
		}
		sb.WriteString("\n")
	}

	for _, help := range r.helpLines(err) {
		fmt.Fprintf(&sb, "help: %s\n", help)
	}

	return sb.String()
}

func (r *Reporter) helpLines(err *NaabError) []string {
	switch err.Kind {
	case TypeNameError:
		return r.nameErrorHelp(err.Message)
	case TypeTypeError:
		return []string{"numeric values widen Int to Float automatically, but never the reverse; insert an explicit conversion"}
	default:
		return nil
	}
}

// nameErrorHelp extracts the unresolved identifier from a standard
// NameError message ("undefined variable: foo", "undefined function:
// foo") and fuzzy-matches it against in-scope names and known stdlib
// module names, suggesting a candidate within Levenshtein distance 2.
func (r *Reporter) nameErrorHelp(message string) []string {
	idx := strings.LastIndex(message, ":")
	if idx < 0 || idx+2 > len(message) {
		return nil
	}
	name := strings.TrimSpace(message[idx+1:])
	if name == "" {
		return nil
	}

	if best, dist := closest(name, r.StdlibModules); best != "" && dist <= 2 {
		return []string{fmt.Sprintf("no module `%s` is in scope; did you mean `use %s`?", name, best)}
	}
	if best, dist := closest(name, r.InScopeNames); best != "" && dist <= 2 {
		return []string{fmt.Sprintf("did you mean `%s`?", best)}
	}
	return nil
}

func closest(name string, candidates []string) (string, int) {
	best := ""
	bestDist := -1
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein(name, c)
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// levenshtein computes the classic edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}

	for i := 1; i <= n; i++ {
		curr[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[m]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
