// Package symbol defines the primary entities produced by a parse: Symbol,
// Import, and the directed Relationship edges between symbols. See spec §3
// and §4.B.
package symbol

import "github.com/codanna/codanna/pkg/types"

// Symbol is the primary entity extracted from source. Equality between two
// Symbols is by Id alone (spec §4.B) — two Symbol values with the same Id are
// considered the same symbol regardless of other fields.
type Symbol struct {
	ID       types.SymbolId
	Name     string
	Kind     types.SymbolKind
	FileID   types.FileId
	Range    types.Range

	// StartByte/EndByte are the symbol's 0-based byte offsets into its
	// file's raw content, letting callers slice source text in O(1)
	// without re-walking lines (see pkg/util.FileCache.FetchCode).
	StartByte uint32
	EndByte   uint32

	// Signature is the source-facing type/parameter text, e.g.
	// "(a int, b string) (bool, error)". Empty when not applicable.
	Signature string

	// DocComment is the raw, unparsed doc comment text attached to the
	// symbol. No language's doc comment is parsed into a structured
	// record; C# keeps the raw `///` lines (see behavior/csharp).
	DocComment string

	// ModulePath is the language's canonical fully-qualified name, e.g.
	// "app.models.user" (Python), "\App\Models\User" (PHP),
	// "crate::foo::Bar" (Rust). Empty when the language has no module
	// concept for this symbol.
	ModulePath string

	Visibility   types.Visibility
	ScopeContext types.ScopeContext
	LanguageID   string
}

// New constructs a minimal Symbol; optional fields are attached afterward
// with the builder-style setters below (spec §4.B).
func New(id types.SymbolId, name string, kind types.SymbolKind, fileID types.FileId, rng types.Range) *Symbol {
	return &Symbol{
		ID:           id,
		Name:         name,
		Kind:         kind,
		FileID:       fileID,
		Range:        rng,
		Visibility:   types.VisibilityUnknown,
		ScopeContext: types.ScopeModule,
	}
}

// WithSignature sets the signature and returns the receiver for chaining.
func (s *Symbol) WithSignature(sig string) *Symbol { s.Signature = sig; return s }

// WithDocComment sets the raw doc comment and returns the receiver.
func (s *Symbol) WithDocComment(doc string) *Symbol { s.DocComment = doc; return s }

// WithModulePath sets the canonical module path and returns the receiver.
func (s *Symbol) WithModulePath(path string) *Symbol { s.ModulePath = path; return s }

// WithVisibility sets the visibility and returns the receiver.
func (s *Symbol) WithVisibility(v types.Visibility) *Symbol { s.Visibility = v; return s }

// WithScopeContext sets the scope context and returns the receiver.
func (s *Symbol) WithScopeContext(sc types.ScopeContext) *Symbol { s.ScopeContext = sc; return s }

// WithLanguageID sets the owning language id and returns the receiver.
func (s *Symbol) WithLanguageID(lang string) *Symbol { s.LanguageID = lang; return s }

// WithByteRange sets the symbol's byte offsets and returns the receiver.
func (s *Symbol) WithByteRange(start, end uint32) *Symbol {
	s.StartByte, s.EndByte = start, end
	return s
}

// Equal reports symbol identity by Id alone, per spec §4.B.
func (s *Symbol) Equal(other *Symbol) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}
