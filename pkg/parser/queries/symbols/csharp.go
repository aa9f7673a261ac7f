package symbols

// CSharpQueries captures C# symbol definitions: methods, classes (with
// base_list for extends/implements), interfaces, structs, enums, and the
// XML doc comment trivia a method/class declaration carries (matched
// separately by the csharp behavior package via raw token scanning, since
// tree-sitter-c-sharp exposes doc comments as unstructured comment nodes).
const CSharpQueries = `
(method_declaration
  name: (identifier) @method.name
) @method.definition

(class_declaration
  name: (identifier) @class.name
  bases: (base_list
    (identifier)* @class.base)?
) @class.definition

(interface_declaration
  name: (identifier) @interface.name
  bases: (base_list
    (identifier)* @interface.base)?
) @interface.definition

(struct_declaration
  name: (identifier) @struct.name
) @struct.definition

(enum_declaration
  name: (identifier) @enum.name
) @enum.definition

(enum_member_declaration
  name: (identifier) @enum_member.name
) @enum_member.definition

(namespace_declaration
  name: (_) @module.name
) @module.definition

(property_declaration
  type: (_)? @field.type
  name: (identifier) @field.name
) @field.definition

(constructor_declaration
  name: (identifier) @method.name
) @method.definition
`
