package kotlin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codanna/codanna/pkg/types"
)

func TestBehavior_ModulePathFromFile(t *testing.T) {
	b := &Behavior{}
	assert.Equal(t, "app.models.User", b.ModulePathFromFile("app/models/User.kt"))
	assert.Equal(t, "scripts.build", b.ModulePathFromFile("scripts/build.kts"))
}

func TestBehavior_ImportMatchesSymbol(t *testing.T) {
	b := &Behavior{}
	assert.True(t, b.ImportMatchesSymbol("app.models.User", "app.models.User"))
	assert.True(t, b.ImportMatchesSymbol("app.models.*", "app.models.User"))
	assert.False(t, b.ImportMatchesSymbol("app.models.*", "app.other.User"))
}

func TestBehavior_MapRelationship(t *testing.T) {
	b := &Behavior{}
	assert.Equal(t, types.RelationExtends, b.MapRelationship("supertype"))
}

func TestBehavior_StructuralProperties(t *testing.T) {
	b := &Behavior{}
	assert.Equal(t, ".", b.ModuleSeparator())
	assert.False(t, b.SupportsTraits())
	assert.True(t, b.SupportsInherentMethods())
	assert.Equal(t, "extends", b.InheritanceRelationName())
}

func TestBehavior_IsExternalImportPath(t *testing.T) {
	b := &Behavior{}
	assert.True(t, b.IsExternalImportPath("kotlin.collections.List"))
	assert.True(t, b.IsExternalImportPath("kotlinx.coroutines.launch"))
	assert.True(t, b.IsExternalImportPath("java.util.List"))
	assert.True(t, b.IsExternalImportPath("javax.inject.Inject"))
	assert.True(t, b.IsExternalImportPath("androidx.compose.runtime.Composable"))
	assert.True(t, b.IsExternalImportPath("android.os.Bundle"))
	assert.False(t, b.IsExternalImportPath("app.models.User"))
}
