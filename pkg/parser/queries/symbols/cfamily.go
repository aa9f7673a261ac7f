package symbols

// CQueries captures C symbol definitions: function definitions/
// declarations, struct/union/enum specifiers, and typedefs.
const CQueries = `
(function_definition
  declarator: (function_declarator
    declarator: (identifier) @function.name)
) @function.definition

(declaration
  declarator: (function_declarator
    declarator: (identifier) @function.name)
) @function.definition

(struct_specifier
  name: (type_identifier) @struct.name
  body: (field_declaration_list)
) @struct.definition

(enum_specifier
  name: (type_identifier) @enum.name
) @enum.definition

(type_definition
  declarator: (type_identifier) @type_alias.name
) @type_alias.definition
`

// CppQueries extends CQueries with class/namespace/template constructs
// that only exist in the C++ grammar.
const CppQueries = `
(function_definition
  declarator: (function_declarator
    declarator: (identifier) @function.name)
) @function.definition

(function_definition
  declarator: (function_declarator
    declarator: (field_identifier) @method.name)
) @method.definition

; base_class_clause surfaces every ancestor in the same match as the
; class's own name/definition; C++'s repeated-ancestor diamonds are
; intentionally not de-duplicated downstream (spec §4.E).
(class_specifier
  name: (type_identifier) @class.name
  (base_class_clause
    (type_identifier)* @class.base)?
  body: (field_declaration_list)
) @class.definition

(struct_specifier
  name: (type_identifier) @struct.name
  (base_class_clause
    (type_identifier)* @class.base)?
  body: (field_declaration_list)
) @struct.definition

(namespace_definition
  name: (namespace_identifier) @module.name
) @module.definition

(enum_specifier
  name: (type_identifier) @enum.name
) @enum.definition

(template_declaration
  (function_definition
    declarator: (function_declarator
      declarator: (identifier) @function.name))
) @function.definition
`
