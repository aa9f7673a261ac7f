package imports

// CSharpQueries captures `using` directives, including aliased forms.
const CSharpQueries = `
(using_directive
  (qualified_name) @import.path
) @import.definition

(using_directive
  (identifier) @import.path
) @import.definition

(using_directive
  (name_equals
    (identifier) @import.alias)
  (qualified_name) @import.path
) @import.definition
`
