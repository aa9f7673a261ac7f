package calls

// TSQueries and JSQueries capture bare calls and member-expression calls,
// shared by TypeScript and JavaScript since both grammars name the nodes
// identically for this shape.
const TSQueries = `
(call_expression
  function: (identifier) @call.callee
) @call.site

(call_expression
  function: (member_expression
    property: (property_identifier) @call.callee)
) @call.site
`

const JSQueries = TSQueries
