package calls

// PythonQueries captures bare-name calls and attribute (method) calls.
const PythonQueries = `
(call
  function: (identifier) @call.callee
) @call.site

(call
  function: (attribute
    attribute: (identifier) @call.callee)
) @call.site
`
