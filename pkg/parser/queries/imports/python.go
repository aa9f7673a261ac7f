package imports

// PythonQueries captures `import x`, `import x as y`, and
// `from x import y` forms.
const PythonQueries = `
(import_statement
  name: (dotted_name) @import.path
) @import.definition

(import_statement
  name: (aliased_import
    name: (dotted_name) @import.path
    alias: (identifier) @import.alias)
) @import.definition

(import_from_statement
  module_name: (dotted_name) @import.path
  name: (dotted_name) @import.member
) @import.definition

(import_from_statement
  module_name: (dotted_name) @import.path
  (wildcard_import) @import.glob
) @import.definition
`
