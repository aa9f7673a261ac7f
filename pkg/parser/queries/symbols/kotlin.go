package symbols

// KotlinQueries captures Kotlin symbol definitions: top-level and member
// functions, classes/objects/interfaces, and properties. Base types listed
// in delegation_specifiers are not captured, so no inheritance edges come
// from these queries.
const KotlinQueries = `
(function_declaration
  name: (simple_identifier) @function.name
) @function.definition

(class_declaration
  name: (type_identifier) @class.name
) @class.definition

(object_declaration
  name: (type_identifier) @class.name
) @class.definition

(property_declaration
  (variable_declaration
    name: (simple_identifier) @variable.name
    type: (_)? @variable.type)
) @variable.definition

(enum_class_body
  (enum_entry
    name: (simple_identifier) @enum_member.name)
) @enum_member.definition

(primary_constructor) @constructor.definition
`
