package imports

// PHPQueries captures `use` import declarations (PSR-4 class imports) and
// `require`/`include` file inclusions.
const PHPQueries = `
(namespace_use_declaration
  (namespace_use_clause
    (qualified_name) @import.path)
) @import.definition

(namespace_use_declaration
  (namespace_use_clause
    (qualified_name) @import.path
    (namespace_aliasing_clause
      (name) @import.alias))
) @import.definition

(include_expression
  (string) @import.path
) @import.definition

(require_expression
  (string) @import.path
) @import.definition
`
