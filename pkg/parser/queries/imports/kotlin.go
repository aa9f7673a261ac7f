package imports

// KotlinQueries captures `import` directives, including aliased
// (`import x as y`) and wildcard (`import x.*`) forms.
const KotlinQueries = `
(import_header
  (identifier) @import.path
  (import_alias
    (type_identifier) @import.alias)
) @import.definition

(import_header
  (identifier) @import.path
) @import.definition
`
