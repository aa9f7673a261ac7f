package calls

// GoQueries captures bare function calls and selector (method) calls.
const GoQueries = `
(call_expression
  function: (identifier) @call.callee
) @call.site

(call_expression
  function: (selector_expression
    field: (field_identifier) @call.callee)
) @call.site
`
