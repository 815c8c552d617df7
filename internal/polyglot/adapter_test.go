package polyglot

import (
	"context"
	"testing"

	"github.com/b-macker/NAAb-sub013/internal/naaberr"
)

type fakeCache struct{}

func (fakeCache) Get(string) (string, bool)          { return "", false }
func (fakeCache) Put(string, []byte) (string, error) { return "", nil }

func TestNewRegistersEveryDocumentedLanguageAndAlias(t *testing.T) {
	d := New(fakeCache{}, 0)
	for _, lang := range []string{"python", "javascript", "js", "ruby", "shell", "sh", "cpp", "rust", "go", "csharp", "cs"} {
		if _, ok := d.adapters[lang]; !ok {
			t.Errorf("expected an adapter registered for %q", lang)
		}
	}
}

func TestRunRejectsUnsupportedLanguage(t *testing.T) {
	d := New(fakeCache{}, 0)
	_, err := d.Run(context.Background(), "cobol", "DISPLAY 'HI'.", nil)
	ne, ok := err.(*naaberr.NaabError)
	if !ok || ne.Kind != naaberr.TypePolyglotError {
		t.Errorf("expected a PolyglotError for an unsupported language, got %v", err)
	}
}

func TestRunReturnsNonZeroShellExitAsResult(t *testing.T) {
	d := New(fakeCache{}, 0)
	_, err := d.Run(context.Background(), "shell", "exit 1", nil)
	if err != nil {
		t.Fatalf("a non-zero shell exit is a captured result, not a Go error: %v", err)
	}
}
