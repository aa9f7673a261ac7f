package rust

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codanna/codanna/pkg/types"
)

func TestBehavior_ModulePathFromFile(t *testing.T) {
	b := &Behavior{CrateName: "my_crate"}
	assert.Equal(t, "crate::foo::bar", b.ModulePathFromFile("src/foo/bar.rs"))
	assert.Equal(t, "crate::foo", b.ModulePathFromFile("src/foo/mod.rs"))
	assert.Equal(t, "crate", b.ModulePathFromFile("src/lib.rs"))
	assert.Equal(t, "crate", b.ModulePathFromFile("src/main.rs"))
}

func TestBehavior_ModulePathFromFile_NoCrateName(t *testing.T) {
	b := &Behavior{}
	assert.Equal(t, "foo::bar", b.ModulePathFromFile("src/foo/bar.rs"))
}

func TestBehavior_ImportMatchesSymbol(t *testing.T) {
	b := &Behavior{}
	assert.True(t, b.ImportMatchesSymbol("crate::foo::Bar", "crate::foo::Bar"))
	assert.True(t, b.ImportMatchesSymbol("foo::Bar", "crate::foo::Bar"))
	assert.False(t, b.ImportMatchesSymbol("foo::Baz", "crate::foo::Bar"))
}

func TestBehavior_MapRelationship(t *testing.T) {
	b := &Behavior{}
	assert.Equal(t, types.RelationImplements, b.MapRelationship("trait_impl"))
	assert.Equal(t, types.RelationImplements, b.MapRelationship("inherent"))
	assert.Equal(t, types.RelationReferences, b.MapRelationship("use"))
}

func TestBehavior_StructuralProperties(t *testing.T) {
	b := &Behavior{}
	assert.Equal(t, "::", b.ModuleSeparator())
	assert.True(t, b.SupportsTraits())
	assert.True(t, b.SupportsInherentMethods())
	assert.Equal(t, "implements", b.InheritanceRelationName())
}

func TestBehavior_IsExternalImportPath(t *testing.T) {
	b := &Behavior{CrateName: "my_crate"}
	assert.False(t, b.IsExternalImportPath("crate::foo::Bar"))
	assert.False(t, b.IsExternalImportPath("self::sibling"))
	assert.False(t, b.IsExternalImportPath("super::parent"))
	assert.False(t, b.IsExternalImportPath("my_crate::foo::Bar"))
	assert.True(t, b.IsExternalImportPath("serde::Deserialize"))
}
