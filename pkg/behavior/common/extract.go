// Package common implements the shared symbol/import extraction pass every
// per-language behavior package reuses, generalizing the teacher's
// Extractor (pkg/extractor/extractor.go: "parse file once, run symbol and
// import queries against the same tree") from TypeScript/JavaScript to a
// declarative per-language capture-category table.
package common

import (
	"fmt"
	"log/slog"
	"sort"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/codanna/codanna/pkg/parser/grammar"
	"github.com/codanna/codanna/pkg/parser/queries"
	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

// CategoryKinds maps a query capture category (the part of "@function.name"
// before the dot) to the symbol kind it denotes. Categories absent from the
// map (e.g. "call", "impl", "import") are handled specially rather than
// turned directly into a Symbol.
type CategoryKinds map[string]types.SymbolKind

// containerKinds is the set of symbol kinds that can own other symbols, used
// to build Defines edges (spec §4.D, find_defines) by byte-range
// containment: a function/method entry whose definition node falls inside a
// container entry's definition node is "defined by" that container.
var containerKinds = map[types.SymbolKind]bool{
	types.KindStruct:    true,
	types.KindClass:     true,
	types.KindInterface: true,
	types.KindTrait:     true,
	types.KindEnum:      true,
}

// memberKinds is the set of symbol kinds eligible to be a Defines target and
// a Calls source (a call site is attributed to the innermost function/method
// entry containing it).
var memberKinds = map[types.SymbolKind]bool{
	types.KindFunction: true,
	types.KindMethod:   true,
}

// Extractor runs one language's registered symbol/import/call queries
// against an already-parsed tree and builds ParseResult-shaped output.
type Extractor struct {
	ID         grammar.ID
	Queries    *queries.Manager
	Kinds      CategoryKinds
	LanguageID string
	logger     *slog.Logger
}

// NewExtractor constructs an Extractor for id using qm for compiled
// queries and kinds to classify symbol captures.
func NewExtractor(id grammar.ID, qm *queries.Manager, kinds CategoryKinds, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{ID: id, Queries: qm, Kinds: kinds, LanguageID: string(id), logger: logger}
}

// Result is the raw product of one extraction pass, before the language
// behavior wraps it into a lang.ParseResult (it is the same shape; kept
// separate here so common has no dependency on pkg/lang, avoiding a cycle).
type Result struct {
	Symbols       []*symbol.Symbol
	Relationships []symbol.UnresolvedRelationship
	Imports       []symbol.Import
	VariableTypes []symbol.VariableType
}

// containerEntry is a definitionEntry with a symbol kind attached, tracked
// alongside Result.Symbols so the Defines/Calls containment pass (below) can
// consult ranges for entries that didn't produce a Symbol (e.g. "impl").
type containerEntry struct {
	name    string
	kind    types.SymbolKind
	start   uint32
	end     uint32
	// metadata distinguishes how a container owns its members, e.g. Rust's
	// "inherent" vs "trait_impl" impl blocks (spec §4.D, find_inherent_methods).
	metadata string
}

// Extract runs the symbol query (always), the import query (if registered),
// and the call query (if registered) against tree and builds a Result.
func (e *Extractor) Extract(tree *ts.Tree, source []byte, fileID types.FileId, counter *types.SymbolCounter) (*Result, error) {
	symbolQuery, err := e.Queries.GetQuery(e.ID, queries.TypeSymbols)
	if err != nil {
		return nil, fmt.Errorf("common: %w", err)
	}
	symbolMatches, err := e.Queries.ExecuteQuery(tree, symbolQuery, source)
	if err != nil {
		return nil, fmt.Errorf("common: failed to execute symbol query for %s: %w", e.ID, err)
	}

	result := &Result{}
	var containers []containerEntry

	for _, match := range symbolMatches {
		entry, ok := e.classify(match)
		if !ok {
			continue
		}
		switch entry.category {
		case "impl":
			rel := e.implRelationship(entry, fileID)
			result.Relationships = append(result.Relationships, rel)
			containers = append(containers, containerEntry{
				name:     entry.typeName,
				kind:     types.KindClass,
				start:    uint32(entry.defNode.StartByte()),
				end:      uint32(entry.defNode.EndByte()),
				metadata: rel.Metadata,
			})
		default:
			if kind, ok := e.Kinds[entry.category]; ok {
				sym := symbol.New(counter.Allocate(), entry.name, kind, fileID, rangeFromNode(entry.defNode)).
					WithLanguageID(e.LanguageID).
					WithSignature(entry.defNode.Utf8Text(source)).
					WithByteRange(uint32(entry.defNode.StartByte()), uint32(entry.defNode.EndByte()))
				result.Symbols = append(result.Symbols, sym)
				containers = append(containers, containerEntry{
					name:  entry.name,
					kind:  kind,
					start: sym.StartByte,
					end:   sym.EndByte,
				})
				for _, base := range entry.bases {
					result.Relationships = append(result.Relationships, symbol.UnresolvedRelationship{
						FromName: entry.name,
						ToName:   base,
						Kind:     types.RelationExtends,
						FileID:   fileID,
					})
				}
				if entry.owner != "" {
					result.Relationships = append(result.Relationships, symbol.UnresolvedRelationship{
						FromName: entry.owner,
						ToName:   entry.name,
						Kind:     types.RelationDefines,
						FileID:   fileID,
						Metadata: "inherent",
					})
				}
				if entry.typeName != "" && (kind == types.KindVariable || kind == types.KindField) {
					result.VariableTypes = append(result.VariableTypes, symbol.VariableType{
						VariableName: entry.name,
						TypeName:     entry.typeName,
						FileID:       fileID,
						Range:        sym.Range,
					})
					result.Relationships = append(result.Relationships, symbol.UnresolvedRelationship{
						FromName: entry.name,
						ToName:   entry.typeName,
						Kind:     types.RelationUses,
						FileID:   fileID,
					})
				}
			}
		}
	}

	result.Relationships = append(result.Relationships, e.definesRelationships(containers, fileID)...)

	if importQuery, err := e.Queries.GetQuery(e.ID, queries.TypeImports); err == nil {
		importMatches, err := e.Queries.ExecuteQuery(tree, importQuery, source)
		if err != nil {
			return nil, fmt.Errorf("common: failed to execute import query for %s: %w", e.ID, err)
		}
		result.Imports = e.extractImports(importMatches, fileID)
	}

	if callQuery, err := e.Queries.GetQuery(e.ID, queries.TypeCalls); err == nil {
		callMatches, err := e.Queries.ExecuteQuery(tree, callQuery, source)
		if err != nil {
			return nil, fmt.Errorf("common: failed to execute call query for %s: %w", e.ID, err)
		}
		result.Relationships = append(result.Relationships, e.callRelationships(callMatches, containers, fileID)...)
	}

	sort.Slice(result.Symbols, func(i, j int) bool {
		return result.Symbols[i].Range.Start.Line < result.Symbols[j].Range.Start.Line
	})

	return result, nil
}

// definesRelationships builds RelationDefines edges from each container to
// every member (function/method) entry whose range it most tightly encloses
// (spec §4.D, find_defines; S1's Defines(Point, Point::fmt)).
func (e *Extractor) definesRelationships(entries []containerEntry, fileID types.FileId) []symbol.UnresolvedRelationship {
	var out []symbol.UnresolvedRelationship
	for _, member := range entries {
		if !memberKinds[member.kind] {
			continue
		}
		owner, ok := smallestContainer(entries, member, containerKinds)
		if !ok {
			continue
		}
		out = append(out, symbol.UnresolvedRelationship{
			FromName: owner.name,
			ToName:   member.name,
			Kind:     types.RelationDefines,
			FileID:   fileID,
			Metadata: owner.metadata,
		})
	}
	return out
}

// callRelationships attributes each call site to the innermost
// function/method entry whose range contains it (spec §4.D, find_calls;
// S1's Calls(main, Point::fmt)). A call site with no enclosing member (a
// module-level call expression) is dropped rather than attributed to
// nothing.
func (e *Extractor) callRelationships(matches []queries.Match, entries []containerEntry, fileID types.FileId) []symbol.UnresolvedRelationship {
	var out []symbol.UnresolvedRelationship
	for _, match := range matches {
		var callee string
		var site *ts.Node
		for _, cap := range match.Captures {
			switch cap.Field {
			case "callee":
				callee = cap.Text
			case "site":
				site = cap.Node
			}
		}
		if callee == "" || site == nil {
			continue
		}
		caller, ok := smallestContainer(entries, containerEntry{
			start: uint32(site.StartByte()),
			end:   uint32(site.EndByte()),
		}, memberKinds)
		if !ok {
			continue
		}
		out = append(out, symbol.UnresolvedRelationship{
			FromName: caller.name,
			ToName:   callee,
			Kind:     types.RelationCalls,
			FileID:   fileID,
		})
	}
	return out
}

// smallestContainer finds, among entries whose kind is in allowedKinds, the
// one with the narrowest byte range that strictly encloses target's range
// (excluding target itself).
func smallestContainer(entries []containerEntry, target containerEntry, allowedKinds map[types.SymbolKind]bool) (containerEntry, bool) {
	var best containerEntry
	found := false
	bestWidth := ^uint32(0)
	for _, candidate := range entries {
		if !allowedKinds[candidate.kind] {
			continue
		}
		if candidate.start == target.start && candidate.end == target.end && candidate.name == target.name {
			continue
		}
		if candidate.start > target.start || candidate.end < target.end {
			continue
		}
		width := candidate.end - candidate.start
		if width < bestWidth {
			bestWidth = width
			best = candidate
			found = true
		}
	}
	return best, found
}

type definitionEntry struct {
	category  string
	name      string
	defNode   *ts.Node
	typeName  string
	traitName string
	bases     []string

	// owner is set by a "receiver" capture (Go's method receiver, declared
	// outside the owning struct's body rather than nested inside it like
	// most languages' class/impl bodies): the receiver type's name, used to
	// emit a direct Defines edge since byte-range containment can't find an
	// enclosing container for a method it doesn't lexically sit inside.
	owner string
}

// classify scans one match's captures and builds a definitionEntry. A match
// with no "definition" capture, or with no name even after falling back to
// its "type" capture, is ignored (e.g. a
// bare helper capture with no enclosing definition, which should not
// happen with well-formed queries but is tolerated defensively).
func (e *Extractor) classify(match queries.Match) (definitionEntry, bool) {
	var entry definitionEntry
	var haveDef bool

	for _, cap := range match.Captures {
		switch cap.Field {
		case "name":
			entry.category = cap.Category
			entry.name = cap.Text
		case "definition":
			entry.category = cap.Category
			entry.defNode = cap.Node
			haveDef = true
		case "type":
			entry.typeName = cap.Text
		case "trait":
			entry.traitName = cap.Text
		case "base", "bases":
			entry.bases = append(entry.bases, cap.Text)
		case "receiver":
			entry.owner = cap.Text
		}
	}

	if !haveDef {
		return entry, false
	}
	if entry.name == "" {
		entry.name = entry.typeName
	}
	return entry, entry.name != ""
}

func (e *Extractor) implRelationship(entry definitionEntry, fileID types.FileId) symbol.UnresolvedRelationship {
	kind := "inherent"
	if entry.traitName != "" {
		kind = "trait_impl"
	}
	toName := entry.traitName
	if toName == "" {
		toName = entry.typeName
	}
	return symbol.UnresolvedRelationship{
		FromName: entry.typeName,
		ToName:   toName,
		Kind:     types.RelationImplements,
		FileID:   fileID,
		Metadata: kind,
	}
}

func (e *Extractor) extractImports(matches []queries.Match, fileID types.FileId) []symbol.Import {
	var out []symbol.Import
	for _, match := range matches {
		var imp symbol.Import
		var hasPath bool
		for _, cap := range match.Captures {
			switch cap.Field {
			case "path", "source":
				imp.Path = stripPathDelimiters(cap.Text)
				hasPath = true
			case "alias":
				imp.Alias = cap.Text
				imp.HasAlias = true
			case "glob", "namespace":
				imp.IsGlob = true
			case "type.marker":
				imp.IsTypeOnly = true
			}
		}
		if hasPath {
			imp.FileID = fileID
			out = append(out, imp)
		}
	}
	return out
}

// stripPathDelimiters removes a single layer of surrounding quote or
// angle-bracket delimiters some languages' import grammars capture as part
// of the path node's text (Go's interpreted_string_literal, C/C++'s
// string_literal and system_lib_string). Paths captured from an already-bare
// node (Rust's scoped_identifier, Python's dotted_name, PHP's
// qualified_name) pass through unchanged.
func stripPathDelimiters(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '<' && last == '>') {
		return s[1 : len(s)-1]
	}
	return s
}

func rangeFromNode(node *ts.Node) types.Range {
	start := node.StartPosition()
	end := node.EndPosition()
	r, err := types.NewRange(
		types.Position{Line: uint32(start.Row), Column: uint32(start.Column)},
		types.Position{Line: uint32(end.Row), Column: uint32(end.Column)},
	)
	if err != nil {
		return types.Range{}
	}
	return r
}
