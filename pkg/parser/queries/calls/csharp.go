package calls

// CSharpQueries captures bare invocations and member-access invocations
// (obj.Method(...), Type.StaticMethod(...)).
const CSharpQueries = `
(invocation_expression
  function: (identifier) @call.callee
) @call.site

(invocation_expression
  function: (member_access_expression
    name: (identifier) @call.callee)
) @call.site
`
