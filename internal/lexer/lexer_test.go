package lexer

import (
	"testing"

	"github.com/b-macker/NAAb-sub013/internal/token"
)

func collect(input string) []token.Token {
	l := New(input, "test.naab")
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestNextTokenBasics(t *testing.T) {
	input := `let x: int = 42;`
	want := []token.Kind{
		token.LET, token.IDENT, token.COLON, token.IDENT, token.ASSIGN, token.INT, token.SEMI, token.EOF,
	}
	got := collect(input)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, got[i].Kind, k)
		}
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"==", token.EQ},
		{"!=", token.NEQ},
		{"<=", token.LE},
		{">=", token.GE},
		{"&&", token.AND},
		{"||", token.OR},
		{"|>", token.PIPE},
		{"|", token.BAR},
		{"..", token.DOTDOT},
		{"..=", token.DOTDOTEQ},
		{"->", token.ARROW},
		{"?", token.QUESTION},
		{"!", token.BANG},
		{"<", token.LT},
		{">", token.GT},
	}
	for _, tt := range tests {
		toks := collect(tt.input)
		if toks[0].Kind != tt.kind {
			t.Errorf("input %q: got %v, want %v", tt.input, toks[0].Kind, tt.kind)
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		lit   string
	}{
		{"42", token.INT, "42"},
		{"3.14", token.FLOAT, "3.14"},
		{"1e10", token.FLOAT, "1e10"},
		{"1.5e-3", token.FLOAT, "1.5e-3"},
	}
	for _, tt := range tests {
		toks := collect(tt.input)
		if toks[0].Kind != tt.kind || toks[0].Literal != tt.lit {
			t.Errorf("input %q: got kind=%v lit=%q, want kind=%v lit=%q", tt.input, toks[0].Kind, toks[0].Literal, tt.kind, tt.lit)
		}
	}
}

func TestRangeDoesNotEatDecimalPoint(t *testing.T) {
	toks := collect("1..5")
	want := []token.Kind{token.INT, token.DOTDOT, token.INT, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks := collect(`"hello\nworld\t\"quoted\""`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %v", toks[0].Kind)
	}
	want := "hello\nworld\t\"quoted\""
	if toks[0].Literal != want {
		t.Errorf("got %q, want %q", toks[0].Literal, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"unterminated`, "test.naab")
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Error("expected a lexer error for unterminated string")
	}
}

func TestKeywords(t *testing.T) {
	input := "let fn return if else while for in break continue true false null struct new use as export try catch finally throw"
	want := []token.Kind{
		token.LET, token.FN, token.RETURN, token.IF, token.ELSE, token.WHILE, token.FOR, token.IN,
		token.BREAK, token.CONTINUE, token.TRUE, token.FALSE, token.NULL, token.STRUCT, token.NEW,
		token.USE, token.AS, token.EXPORT, token.TRY, token.CATCH, token.FINALLY, token.THROW, token.EOF,
	}
	got := collect(input)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	for i, k := range want {
		if got[i].Kind != k {
			t.Errorf("token %d (%q): got %v, want %v", i, got[i].Literal, got[i].Kind, k)
		}
	}
}

func TestComments(t *testing.T) {
	input := `let x = 1; // trailing comment
/* block
   comment */
let y = 2;`
	got := collect(input)
	var idents []string
	for _, tk := range got {
		if tk.Kind == token.LET {
			idents = append(idents, "let")
		}
	}
	if len(idents) != 2 {
		t.Errorf("expected comments to be skipped, got tokens: %v", got)
	}
}

func TestPositionTracking(t *testing.T) {
	input := "let x\n= 1;"
	toks := collect(input)
	// 'x' is on line 1
	if toks[1].Pos.Line != 1 {
		t.Errorf("expected x on line 1, got %d", toks[1].Pos.Line)
	}
	// '=' is on line 2
	if toks[2].Pos.Line != 2 {
		t.Errorf("expected = on line 2, got %d", toks[2].Pos.Line)
	}
}

func TestPolyglotBlock(t *testing.T) {
	input := "<<python[x, y]\nprint(x + y)\n>>"
	toks := collect(input)
	if toks[0].Kind != token.POLYGLOT {
		t.Fatalf("expected POLYGLOT, got %v", toks[0].Kind)
	}
	parts := splitPolyglotLiteral(toks[0].Literal)
	if parts[0] != "python" {
		t.Errorf("expected language 'python', got %q", parts[0])
	}
	if parts[1] != "x,y" {
		t.Errorf("expected bindings 'x,y', got %q", parts[1])
	}
	if parts[2] != "print(x + y)\n" {
		t.Errorf("expected code 'print(x + y)\\n', got %q", parts[2])
	}
}

func TestPolyglotBlockNoBindings(t *testing.T) {
	input := "<<shell\necho hi\n>>"
	toks := collect(input)
	parts := splitPolyglotLiteral(toks[0].Literal)
	if parts[0] != "shell" {
		t.Errorf("expected language 'shell', got %q", parts[0])
	}
	if parts[1] != "" {
		t.Errorf("expected no bindings, got %q", parts[1])
	}
}

func TestUnterminatedPolyglotBlock(t *testing.T) {
	l := New("<<python\nprint(1)\n", "test.naab")
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Error("expected a lexer error for unterminated polyglot block")
	}
}

func splitPolyglotLiteral(lit string) [3]string {
	var out [3]string
	i := 0
	start := 0
	for pos := 0; pos < len(lit) && i < 2; pos++ {
		if lit[pos] == '\n' {
			out[i] = lit[start:pos]
			start = pos + 1
			i++
		}
	}
	out[2] = lit[start:]
	return out
}
