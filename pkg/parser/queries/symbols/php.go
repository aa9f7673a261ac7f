package symbols

// PHPQueries captures PHP symbol definitions: functions, classes (with
// extends/implements clauses), interfaces, traits, methods, and
// class-level constants/properties.
const PHPQueries = `
(function_definition
  name: (name) @function.name
) @function.definition

(class_declaration
  name: (name) @class.name
  (base_clause (name)* @class.base)?
  (class_interface_clause (name)* @class.base)?
) @class.definition

(interface_declaration
  name: (name) @interface.name
  (base_clause (name)* @interface.base)?
) @interface.definition

(trait_declaration
  name: (name) @trait.name
) @trait.definition

(method_declaration
  name: (name) @method.name
) @method.definition

(enum_declaration
  name: (name) @enum.name
) @enum.definition

(const_declaration
  (const_element
    (name) @constant.name)
) @constant.definition

(namespace_definition
  name: (namespace_name) @module.name
) @module.definition

(property_declaration
  type: (_)? @field.type
  (property_element
    (variable_name (name) @field.name))
) @field.definition
`
