package types

// SymbolKind tags the declaration shape of a Symbol. The set is open: a
// parser may emit a kind not listed here, and callers that don't recognize a
// kind should bucket it as KindReference rather than reject it.
type SymbolKind string

const (
	KindFunction   SymbolKind = "function"
	KindMethod     SymbolKind = "method"
	KindStruct     SymbolKind = "struct"
	KindClass      SymbolKind = "class"
	KindInterface  SymbolKind = "interface"
	KindTrait      SymbolKind = "trait"
	KindEnum       SymbolKind = "enum"
	KindEnumMember SymbolKind = "enum_member"
	KindField      SymbolKind = "field"
	KindVariable   SymbolKind = "variable"
	KindConstant   SymbolKind = "constant"
	KindModule     SymbolKind = "module"
	KindNamespace  SymbolKind = "namespace"
	KindTypeAlias  SymbolKind = "type_alias"
	KindMacro      SymbolKind = "macro"
	KindImport     SymbolKind = "import"

	// KindReference is the fallback bucket for kinds a caller does not
	// recognize; the set of SymbolKind values is intentionally open.
	KindReference SymbolKind = "reference"
)

// Visibility is the access level of a symbol, normalized across languages
// that express it differently (Rust `pub`, PHP `public`/`protected`/`private`,
// Go capitalization, Python underscore convention).
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
	VisibilityModule    Visibility = "module"
	VisibilityUnknown   Visibility = "unknown"
)

// ScopeContext classifies where a symbol was declared, which resolution uses
// to decide visibility and lookup order (spec §4.F).
type ScopeContext string

const (
	ScopeModule      ScopeContext = "module"
	ScopeClassMember ScopeContext = "class_member"
	ScopeFunction    ScopeContext = "function"
	ScopeBlock       ScopeContext = "block"
	ScopeParameter   ScopeContext = "parameter"
)

// RelationKind is the tag on a directed edge between two symbols. Only one
// direction of a paired kind (e.g. Calls/CalledBy) is ever persisted; the
// reverse is derived on read.
type RelationKind string

const (
	RelationCalls          RelationKind = "calls"
	RelationCalledBy       RelationKind = "called_by"
	RelationDefines        RelationKind = "defines"
	RelationDefinedIn      RelationKind = "defined_in"
	RelationImplements     RelationKind = "implements"
	RelationImplementedBy  RelationKind = "implemented_by"
	RelationExtends        RelationKind = "extends"
	RelationExtendedBy     RelationKind = "extended_by"
	RelationUses           RelationKind = "uses"
	RelationUsedBy         RelationKind = "used_by"
	RelationReferences     RelationKind = "references"
	RelationReferencedBy   RelationKind = "referenced_by"
)

// reverseOf maps a forward kind to its derived reverse; kinds not present
// here are already reverse kinds (or have no defined reverse).
var reverseOf = map[RelationKind]RelationKind{
	RelationCalls:      RelationCalledBy,
	RelationDefines:    RelationDefinedIn,
	RelationImplements: RelationImplementedBy,
	RelationExtends:    RelationExtendedBy,
	RelationUses:       RelationUsedBy,
	RelationReferences: RelationReferencedBy,
}

var forwardOf = func() map[RelationKind]RelationKind {
	m := make(map[RelationKind]RelationKind, len(reverseOf))
	for fwd, rev := range reverseOf {
		m[rev] = fwd
	}
	return m
}()

// Reverse returns the paired relation kind for k: Calls <-> CalledBy, and so
// on. Only the forward direction is ever stored; readers derive the reverse
// with this function (spec invariant: edge symmetry).
func (k RelationKind) Reverse() RelationKind {
	if rev, ok := reverseOf[k]; ok {
		return rev
	}
	if fwd, ok := forwardOf[k]; ok {
		return fwd
	}
	return k
}

// IsForward reports whether k is a canonically-stored forward kind (the ones
// keyed directly in reverseOf) as opposed to a derived reverse kind.
func (k RelationKind) IsForward() bool {
	_, ok := reverseOf[k]
	return ok
}

// ReverseKinds used for impact-radius BFS traversal (spec §4.H): given a
// symbol, the set of reverse kinds that lead to its dependents.
var ReverseKinds = []RelationKind{
	RelationCalledBy,
	RelationImplementedBy,
	RelationUsedBy,
	RelationExtendedBy,
	RelationDefinedIn,
}
