package symbol

import "github.com/codanna/codanna/pkg/types"

// Import represents a single import statement as extracted by a parser.
// It is not resolved at parse time; language behavior interprets Path and
// IsGlob/IsTypeOnly during resolution (spec §3).
type Import struct {
	Path       string
	Alias      string
	HasAlias   bool
	FileID     types.FileId
	IsGlob     bool
	IsTypeOnly bool

	// Origin is set by the resolution layer (External or Internal) once the
	// import has been classified relative to the project root. Empty until
	// then.
	Origin ImportOrigin
}

// ImportOrigin classifies an import as pointing inside or outside the
// indexed project (spec §4.F, "Import-origin discipline").
type ImportOrigin string

const (
	OriginUnknown  ImportOrigin = ""
	OriginExternal ImportOrigin = "external"
	OriginInternal ImportOrigin = "internal"
)

// Relationship is a directed, resolved edge between two symbols. Both
// endpoints must already exist in the index when a Relationship is
// persisted (spec §3 invariant); edges that cannot be resolved are held as
// UnresolvedRelationship instead and are never promoted to Relationship.
type Relationship struct {
	From     types.SymbolId
	To       types.SymbolId
	Kind     types.RelationKind
	Metadata string // free-form language hints, e.g. "receiver:self,static:true"
}

// UnresolvedRelationship is the pre-resolution shape of an edge: names in
// place of one or both ids, plus the file context resolution needs to look
// the names up.
type UnresolvedRelationship struct {
	FromName string
	ToName   string
	Kind     types.RelationKind
	FileID   types.FileId
	Metadata string
}

// VariableType records a variable/field/parameter's declared or inferred
// type, as captured by find_variable_types (spec §4.D). Unlike a
// Relationship it is not an edge between two symbols — TypeName may not
// resolve to anything in the index at all (a stdlib or external type) — so
// it is carried as its own lightweight record rather than forced through
// UnresolvedRelationship.
type VariableType struct {
	VariableName string
	TypeName     string
	FileID       types.FileId
	Range        types.Range
}
