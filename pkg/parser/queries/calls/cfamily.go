package calls

// CQueries and CppQueries capture bare calls and field-expression (member)
// calls; shared between the C and C++ grammars for this shape.
const CQueries = `
(call_expression
  function: (identifier) @call.callee
) @call.site

(call_expression
  function: (field_expression
    field: (field_identifier) @call.callee)
) @call.site
`

const CppQueries = CQueries
