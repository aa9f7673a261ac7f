// Package registry holds the process-wide map from a language id to its
// Definition, split into "available" (compiled in) vs "enabled" (turned on
// in settings), ported from original_source/src/parsing/registry.rs and
// generalized from the teacher's two-case Language switch
// (pkg/parser/language.go) to the full language set.
package registry

import (
	"strings"
	"sync"

	"github.com/codanna/codanna/pkg/codannaerr"
	"github.com/codanna/codanna/pkg/lang"
	"github.com/codanna/codanna/pkg/parser/grammar"
)

// EnabledChecker reports whether a language id is enabled, decoupling the
// registry from the concrete settings type (pkg/config).
type EnabledChecker interface {
	IsLanguageEnabled(id grammar.ID) bool
}

// Registry is the process-wide language registry: every compiled-in
// Definition is "available"; whether it is "enabled" is delegated to an
// EnabledChecker at query time, matching registry.rs's is_available vs
// is_enabled split.
type Registry struct {
	mu          sync.RWMutex
	definitions map[grammar.ID]*lang.Definition
	byExt       map[string]grammar.ID
}

// New returns an empty registry. Call Register for each language the build
// links in (pkg/behavior/* init, or explicit wiring in cmd/codanna).
func New() *Registry {
	return &Registry{
		definitions: make(map[grammar.ID]*lang.Definition),
		byExt:       make(map[string]grammar.ID),
	}
}

// Register adds a language definition, indexing its extensions for
// GetByExtension. Re-registering the same id overwrites the previous entry.
func (r *Registry) Register(def *lang.Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.ID] = def
	for _, ext := range def.Extensions {
		r.byExt[strings.ToLower(ext)] = def.ID
	}
}

// Get looks up a definition by id. Returns ExtensionNotMapped-flavored
// codannaerr.LanguageNotFound when id was never registered.
func (r *Registry) Get(id grammar.ID) (*lang.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[id]
	if !ok {
		return nil, codannaerr.LanguageNotFound(string(id))
	}
	return def, nil
}

// GetByExtension looks up a definition by file extension (without the
// leading dot, case-insensitive).
func (r *Registry) GetByExtension(ext string) (*lang.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if !ok {
		return nil, codannaerr.ExtensionNotMapped(ext)
	}
	return r.definitions[id], nil
}

// IDForExtension looks up the language id mapped to ext (without the
// leading dot, case-insensitive), satisfying parser.ExtensionResolver.
func (r *Registry) IDForExtension(ext string) (grammar.ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return id, ok
}

// FindID resolves a free-form name ("typescript", "ts", "TS") to a
// registered grammar.ID, matching registry.rs's find_language_id.
func (r *Registry) FindID(name string) (grammar.ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lower := strings.ToLower(name)
	if _, ok := r.definitions[grammar.ID(lower)]; ok {
		return grammar.ID(lower), true
	}
	for id, def := range r.definitions {
		for _, ext := range def.Extensions {
			if ext == lower {
				return id, true
			}
		}
	}
	return "", false
}

// IsAvailable reports whether id has a compiled-in definition, regardless
// of whether settings enable it.
func (r *Registry) IsAvailable(id grammar.ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.definitions[id]
	return ok
}

// IsEnabled reports whether id is both available and turned on per checker.
func (r *Registry) IsEnabled(id grammar.ID, checker EnabledChecker) bool {
	return r.IsAvailable(id) && checker.IsLanguageEnabled(id)
}

// All returns every registered definition, in no particular order.
func (r *Registry) All() []*lang.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*lang.Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		out = append(out, def)
	}
	return out
}

// Enabled returns every registered definition that checker currently
// enables, matching registry.rs's iter_enabled.
func (r *Registry) Enabled(checker EnabledChecker) []*lang.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*lang.Definition
	for id, def := range r.definitions {
		if checker.IsLanguageEnabled(id) {
			out = append(out, def)
		}
	}
	return out
}

// EnabledExtensions lists every extension mapped to a currently enabled
// language, matching registry.rs's enabled_extensions.
func (r *Registry) EnabledExtensions(checker EnabledChecker) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for ext, id := range r.byExt {
		if checker.IsLanguageEnabled(id) {
			out = append(out, ext)
		}
	}
	return out
}
