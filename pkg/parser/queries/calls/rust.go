package calls

// RustQueries captures every call-expression site in a Rust file: bare
// function calls, method/field calls, and path-qualified calls
// (Type::method(...)), each tagged @call.callee with the name being
// invoked (spec §4.D, find_calls).
const RustQueries = `
(call_expression
  function: (identifier) @call.callee
) @call.site

(call_expression
  function: (field_expression
    field: (field_identifier) @call.callee)
) @call.site

(call_expression
  function: (scoped_identifier
    name: (identifier) @call.callee)
) @call.site
`
