package imports

// RustQueries captures `use` declarations, including aliasing and glob
// imports, for Rust's module resolution (spec §4.E, Rust module_path).
const RustQueries = `
(use_declaration
  argument: (scoped_identifier) @import.path
) @import.definition

(use_declaration
  argument: (use_as_clause
    path: (_) @import.path
    alias: (identifier) @import.alias)
) @import.definition

(use_declaration
  argument: (use_wildcard) @import.glob
) @import.definition

(use_declaration
  argument: (identifier) @import.path
) @import.definition
`
