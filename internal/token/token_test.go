package token

import "testing"

func TestLookupIdentClassifiesKeywords(t *testing.T) {
	cases := map[string]Kind{
		"let":    LET,
		"fn":     FN,
		"struct": STRUCT,
		"catch":  CATCH,
		"throw":  THROW,
	}
	for ident, want := range cases {
		if got := LookupIdent(ident); got != want {
			t.Errorf("LookupIdent(%q) = %v, want %v", ident, got, want)
		}
	}
}

func TestLookupIdentFallsBackToIdent(t *testing.T) {
	if got := LookupIdent("myVariable"); got != IDENT {
		t.Errorf("LookupIdent(myVariable) = %v, want IDENT", got)
	}
}

func TestPositionStringIncludesFileWhenPresent(t *testing.T) {
	p := Position{File: "main.naab", Line: 3, Column: 5}
	if got, want := p.String(), "main.naab:3:5"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestPositionStringOmitsFileWhenEmpty(t *testing.T) {
	p := Position{Line: 3, Column: 5}
	if got, want := p.String(), "3:5"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}
