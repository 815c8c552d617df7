// Package module implements NAAb's module loader: path resolution, a
// parse/evaluate cache keyed by resolved absolute path, cycle detection
// during recursive import evaluation, and export-table isolation for
// `use <path> [as <alias>]`.
package module

import (
	"strings"

	"github.com/b-macker/NAAb-sub013/internal/value"
)

// Module is one resolved, loaded `.naab` source file's record: its
// evaluated exports table, cached so a second `use` of the same path
// reuses it instead of re-parsing and re-evaluating.
type Module struct {
	Path    string // resolved absolute path
	Name    string // leaf name, extension stripped
	Exports map[string]value.Value
}

// NormalizedName reports the module's leaf name case-folded, since case
// is irrelevant when two `use` statements alias the same module under
// different spellings of its leaf name.
func (m *Module) NormalizedName() string { return strings.ToLower(m.Name) }
