package imports

// CQueries captures #include directives, both system (<...>) and local
// ("...") forms. CppQueries reuses the same directive shape plus `using`
// declarations for namespace imports.
const CQueries = `
(preproc_include
  path: (system_lib_string) @import.path
) @import.definition

(preproc_include
  path: (string_literal) @import.path
) @import.definition
`

const CppQueries = `
(preproc_include
  path: (system_lib_string) @import.path
) @import.definition

(preproc_include
  path: (string_literal) @import.path
) @import.definition

(using_declaration
  (qualified_identifier) @import.path
) @import.definition

(using_declaration
  (identifier) @import.path
) @import.definition
`
