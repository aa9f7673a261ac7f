package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end coverage for find_defines/find_calls/find_uses/
// find_variable_types against the real registry/parser/query pipeline
// (IndexContent), not just the Graph-level fixtures in graph_test.go.

const goMethodSource = `package animals

type Dog struct {
	Name string
}

func (d *Dog) Speak() string {
	return d.greet()
}

func (d *Dog) greet() string {
	return "woof"
}

var count int
`

func TestExtractEndToEnd_Go_DefinesCallsAndVariableTypes(t *testing.T) {
	indexer := newTestIndexer(t)
	defer indexer.Close()

	fs, err := indexer.IndexContent("dog.go", []byte(goMethodSource))
	require.NoError(t, err)

	dogs := indexer.FindSymbolsByName("Dog")
	require.Len(t, dogs, 1)
	dog := dogs[0]

	defines := indexer.Graph().Defines(dog.ID)
	definedNames := make(map[string]bool, len(defines))
	for _, rel := range defines {
		target, ok := indexer.Graph().Get(rel.To)
		require.True(t, ok)
		definedNames[target.Name] = true
		assert.Equal(t, "inherent", rel.Metadata, "Go receiver methods attribute as inherent, not trait_impl")
	}
	assert.True(t, definedNames["Speak"], "Dog should define Speak despite the method sitting outside the struct body")
	assert.True(t, definedNames["greet"], "Dog should define greet the same way")

	methods := indexer.Graph().InherentMethods(dog.ID)
	require.Len(t, methods, 2)

	speaks := indexer.FindSymbolsByName("Speak")
	require.Len(t, speaks, 1)
	calls := indexer.Graph().CalledFunctions(speaks[0].ID)
	require.Len(t, calls, 1)
	callee, ok := indexer.Graph().Get(calls[0].To)
	require.True(t, ok)
	assert.Equal(t, "greet", callee.Name, "Speak's call to d.greet() should attribute to Speak as caller")

	owner, ok := indexer.Graph().ResolveMethod("Dog", "greet")
	require.True(t, ok)
	assert.Equal(t, "greet", owner.Name)

	vars := indexer.Graph().VariableTypesInFile(fs.FileID)
	require.Len(t, vars, 1)
	assert.Equal(t, "count", vars[0].VariableName)
	assert.Equal(t, "int", vars[0].TypeName)
}

func TestExtractEndToEnd_Python_DefinesAndCallsViaClassBodyContainment(t *testing.T) {
	indexer := newPythonIndexer(t)
	defer indexer.Close()

	source := `class Animal:
    def speak(self):
        return self.sound()

    def sound(self):
        return "..."
`
	_, err := indexer.IndexContent("animal.py", []byte(source))
	require.NoError(t, err)

	animals := indexer.FindSymbolsByName("Animal")
	require.Len(t, animals, 1)

	defines := indexer.Graph().Defines(animals[0].ID)
	definedNames := make(map[string]bool, len(defines))
	for _, rel := range defines {
		target, ok := indexer.Graph().Get(rel.To)
		require.True(t, ok)
		definedNames[target.Name] = true
	}
	assert.True(t, definedNames["speak"])
	assert.True(t, definedNames["sound"])

	speaks := indexer.FindSymbolsByName("speak")
	require.Len(t, speaks, 1)
	calls := indexer.Graph().CalledFunctions(speaks[0].ID)
	require.Len(t, calls, 1)
	callee, ok := indexer.Graph().Get(calls[0].To)
	require.True(t, ok)
	assert.Equal(t, "sound", callee.Name)
}

// TestExtractEndToEnd_Go_ExternalImportNotShadowedByLocalSymbol is the S3
// demonstration against the full IndexContent pipeline rather than a
// hand-built Graph fixture: a bare call to the name "fmt" (the local
// binding an unaliased `import "fmt"` introduces) must not resolve to a
// same-named local function, even though one is declared in this file.
func TestExtractEndToEnd_Go_ExternalImportNotShadowedByLocalSymbol(t *testing.T) {
	indexer := newTestIndexer(t)
	defer indexer.Close()

	source := `package animals

import "fmt"

func greet() string {
	return fmt()
}

func fmt() string {
	return "shadow"
}
`
	_, err := indexer.IndexContent("shadow.go", []byte(source))
	require.NoError(t, err)

	greets := indexer.FindSymbolsByName("greet")
	require.Len(t, greets, 1)

	calls := indexer.Graph().CalledFunctions(greets[0].ID)
	assert.Empty(t, calls, "a call to the name bound by an external import must not resolve to a same-named local function")
}
