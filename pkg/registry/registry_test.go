package registry

import (
	"testing"

	"github.com/codanna/codanna/pkg/lang"
	"github.com/codanna/codanna/pkg/parser/grammar"
)

type fakeChecker map[grammar.ID]bool

func (f fakeChecker) IsLanguageEnabled(id grammar.ID) bool { return f[id] }

func TestRegistryAvailableVsEnabled(t *testing.T) {
	r := New()
	r.Register(&lang.Definition{ID: grammar.Go, Extensions: []string{"go"}})
	r.Register(&lang.Definition{ID: grammar.Python, Extensions: []string{"py", "pyi"}})

	if !r.IsAvailable(grammar.Go) {
		t.Fatal("expected go available")
	}
	if r.IsAvailable(grammar.Rust) {
		t.Fatal("rust was never registered")
	}

	checker := fakeChecker{grammar.Go: true}
	if !r.IsEnabled(grammar.Go, checker) {
		t.Fatal("expected go enabled")
	}
	if r.IsEnabled(grammar.Python, checker) {
		t.Fatal("python available but not enabled")
	}

	enabled := r.Enabled(checker)
	if len(enabled) != 1 || enabled[0].ID != grammar.Go {
		t.Fatalf("expected exactly go enabled, got %v", enabled)
	}
}

func TestRegistryGetByExtension(t *testing.T) {
	r := New()
	r.Register(&lang.Definition{ID: grammar.Python, Extensions: []string{"py", "pyi"}})

	def, err := r.GetByExtension(".PYI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.ID != grammar.Python {
		t.Fatalf("got %v", def.ID)
	}

	if _, err := r.GetByExtension("rs"); err == nil {
		t.Fatal("expected ExtensionNotMapped for unregistered extension")
	}
}

func TestRegistryGetUnknownLanguage(t *testing.T) {
	r := New()
	if _, err := r.Get(grammar.Kotlin); err == nil {
		t.Fatal("expected error for unregistered language id")
	}
}
