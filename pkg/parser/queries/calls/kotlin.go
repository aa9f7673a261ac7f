package calls

// KotlinQueries captures bare calls. Kotlin's grammar does not label the
// callee field on call_expression, so the callee identifier is matched
// positionally rather than by field name.
const KotlinQueries = `
(call_expression
  (simple_identifier) @call.callee
) @call.site

(navigation_expression
  (navigation_suffix
    (simple_identifier) @call.callee)
) @call.site
`
