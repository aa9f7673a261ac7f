package symbols

// PythonQueries captures Python symbol definitions: module-level and
// nested functions, classes (with base-class list for MRO resolution),
// and module-level assignments treated as variables/constants.
const PythonQueries = `
(function_definition
  name: (identifier) @function.name
) @function.definition

(class_definition
  name: (identifier) @class.name
  superclasses: (argument_list
    (identifier)* @class.base)?
) @class.definition

(decorated_definition
  definition: (function_definition
    name: (identifier) @function.name)
) @function.definition

(expression_statement
  (assignment
    left: (identifier) @variable.name
    type: (type)? @variable.type)
) @variable.definition
`
