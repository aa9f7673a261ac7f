package symbols

// RustQueries captures Rust symbol definitions: functions, structs, enums,
// traits, impl blocks (both inherent and trait impls, distinguished by the
// optional @impl.trait capture), and type aliases.
const RustQueries = `
(function_item
  name: (identifier) @function.name
) @function.definition

(struct_item
  name: (type_identifier) @struct.name
) @struct.definition

(enum_item
  name: (type_identifier) @enum.name
) @enum.definition

(enum_variant
  name: (identifier) @enum_member.name
) @enum_member.definition

(trait_item
  name: (type_identifier) @trait.name
) @trait.definition

; Inherent impl: impl Foo { ... }
(impl_item
  type: (type_identifier) @impl.type
  !trait
) @impl.definition

; Trait impl: impl Trait for Foo { ... }
(impl_item
  trait: (type_identifier) @impl.trait
  type: (type_identifier) @impl.type
) @impl.definition

(function_signature_item
  name: (identifier) @function.name
) @function.definition

(type_item
  name: (type_identifier) @type_alias.name
) @type_alias.definition

(mod_item
  name: (identifier) @module.name
) @module.definition

(macro_definition
  name: (identifier) @macro.name
) @macro.definition

(const_item
  name: (identifier) @constant.name
) @constant.definition

(static_item
  name: (identifier) @constant.name
) @constant.definition

(field_declaration
  name: (field_identifier) @field.name
  type: (_) @field.type
) @field.definition
`
