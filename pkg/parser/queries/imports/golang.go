package imports

// GoQueries captures single and grouped import specs, including aliased
// and dot/blank imports.
const GoQueries = `
(import_spec
  path: (interpreted_string_literal) @import.path
) @import.definition

(import_spec
  name: (package_identifier) @import.alias
  path: (interpreted_string_literal) @import.path
) @import.definition

(import_spec
  name: (dot) @import.glob
  path: (interpreted_string_literal) @import.path
) @import.definition

(import_spec
  name: (blank_identifier) @import.alias
  path: (interpreted_string_literal) @import.path
) @import.definition
`
