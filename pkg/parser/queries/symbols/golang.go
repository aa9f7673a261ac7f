package symbols

// GoQueries captures Go symbol definitions: functions, methods (with
// receiver type), struct/interface type declarations, and package-level
// const/var declarations.
const GoQueries = `
(function_declaration
  name: (identifier) @function.name
) @function.definition

(method_declaration
  receiver: (parameter_list
    (parameter_declaration
      type: [(pointer_type (type_identifier) @method.receiver)
             (type_identifier) @method.receiver]))
  name: (field_identifier) @method.name
) @method.definition

(type_declaration
  (type_spec
    name: (type_identifier) @struct.name
    type: (struct_type))
) @struct.definition

(type_declaration
  (type_spec
    name: (type_identifier) @interface.name
    type: (interface_type))
) @interface.definition

(type_declaration
  (type_alias
    name: (type_identifier) @type_alias.name)
) @type_alias.definition

(const_declaration
  (const_spec
    name: (identifier) @constant.name)
) @constant.definition

(var_declaration
  (var_spec
    name: (identifier) @variable.name
    type: (_)? @variable.type)
) @variable.definition
`
