package calls

// PHPQueries captures free-function calls, instance method calls, and
// static (scope-resolution) calls.
const PHPQueries = `
(function_call_expression
  function: (name) @call.callee
) @call.site

(member_call_expression
  name: (name) @call.callee
) @call.site

(scoped_call_expression
  name: (name) @call.callee
) @call.site
`
