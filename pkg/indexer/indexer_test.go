package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codanna/codanna/pkg/behavior/python"
	"github.com/codanna/codanna/pkg/parser"
	"github.com/codanna/codanna/pkg/parser/queries"
	"github.com/codanna/codanna/pkg/registry"
	"github.com/codanna/codanna/pkg/types"
	"github.com/codanna/codanna/pkg/util"
)

const goSource = `package animals

type Animal interface {
	Speak() string
}

type Dog struct {
	Name string
}

func (d *Dog) Speak() string {
	return d.Name
}

func NewDog(name string) *Dog {
	return &Dog{Name: name}
}
`

func newTestIndexer(t *testing.T) *SymbolIndexer {
	t.Helper()
	logger := util.NewLogger(util.DefaultLoggerConfig())
	reg, pm, _ := newTestRegistry(logger)
	t.Cleanup(pm.Close)
	return NewSymbolIndexer(DefaultSymbolIndexerConfig(), reg, pm, "", logger)
}

func TestNewSymbolIndexer(t *testing.T) {
	indexer := newTestIndexer(t)
	defer indexer.Close()

	stats := indexer.GetStats()
	assert.Equal(t, 0, stats.IndexedFiles)
	assert.Equal(t, 0, stats.TotalSymbols)
}

func TestIndexContent_Basic(t *testing.T) {
	indexer := newTestIndexer(t)
	defer indexer.Close()

	fs, err := indexer.IndexContent("animals.go", []byte(goSource))
	require.NoError(t, err)
	require.NotNil(t, fs)

	assert.Equal(t, "go", fs.LanguageID)
	names := make(map[string]bool, len(fs.Symbols))
	for _, sym := range fs.Symbols {
		names[sym.Name] = true
	}
	assert.True(t, names["Animal"])
	assert.True(t, names["Dog"])
	assert.True(t, names["Speak"])
	assert.True(t, names["NewDog"])

	// Source order: Animal, Dog, Speak, NewDog.
	require.Len(t, fs.Symbols, 4)
	assert.Equal(t, "Animal", fs.Symbols[0].Name)
	assert.Equal(t, "NewDog", fs.Symbols[3].Name)

	stats := indexer.GetStats()
	assert.Equal(t, 1, stats.IndexedFiles)
	assert.Equal(t, 4, stats.TotalSymbols)
}

func TestIndexContent_CacheHitOnUnchangedContent(t *testing.T) {
	indexer := newTestIndexer(t)
	defer indexer.Close()

	_, err := indexer.IndexContent("animals.go", []byte(goSource))
	require.NoError(t, err)

	_, err = indexer.IndexContent("animals.go", []byte(goSource))
	require.NoError(t, err)

	stats := indexer.GetStats()
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
}

func TestIndexContent_ChangedContentReplacesSymbols(t *testing.T) {
	indexer := newTestIndexer(t)
	defer indexer.Close()

	_, err := indexer.IndexContent("animals.go", []byte(goSource))
	require.NoError(t, err)

	updated := goSource + "\nfunc Bark() {}\n"
	fs, err := indexer.IndexContent("animals.go", []byte(updated))
	require.NoError(t, err)
	assert.Len(t, fs.Symbols, 5)

	found := indexer.FindSymbolsByName("Bark")
	assert.Len(t, found, 1)
}

func TestRemoveFile(t *testing.T) {
	indexer := newTestIndexer(t)
	defer indexer.Close()

	_, err := indexer.IndexContent("animals.go", []byte(goSource))
	require.NoError(t, err)
	require.Len(t, indexer.FindSymbolsByName("Dog"), 1)

	indexer.RemoveFile("animals.go")
	assert.Empty(t, indexer.FindSymbolsByName("Dog"))
	_, ok := indexer.GetFileSymbols("animals.go")
	assert.False(t, ok)
}

func TestInvalidateFile_MarksDirtyUntilReindexed(t *testing.T) {
	indexer := newTestIndexer(t)
	defer indexer.Close()

	_, err := indexer.IndexContent("animals.go", []byte(goSource))
	require.NoError(t, err)

	indexer.InvalidateFile("animals.go")
	assert.True(t, indexer.IsDirty("animals.go"))

	_, err = indexer.IndexContent("animals.go", []byte(goSource))
	require.NoError(t, err)
	assert.False(t, indexer.IsDirty("animals.go"))
}

func newPythonIndexer(t *testing.T) *SymbolIndexer {
	t.Helper()
	logger := util.NewLogger(util.DefaultLoggerConfig())
	pm := parser.NewManager(logger)
	t.Cleanup(pm.Close)
	qm := queries.NewManager(pm, logger)
	reg := registry.New()
	reg.Register(python.Definition(qm, logger))
	return NewSymbolIndexer(DefaultSymbolIndexerConfig(), reg, pm, "", logger)
}

const pythonSource = `class Animal:
    def speak(self):
        pass


class Dog(Animal):
    def speak(self):
        return "woof"
`

func TestGraph_ExtendsEdgeResolvesAcrossSymbolsInSameFile(t *testing.T) {
	indexer := newPythonIndexer(t)
	defer indexer.Close()

	_, err := indexer.IndexContent("animals.py", []byte(pythonSource))
	require.NoError(t, err)

	dogs := indexer.FindSymbolsByName("Dog")
	require.Len(t, dogs, 1)
	dog := dogs[0]

	impls := indexer.Graph().Dependencies(dog.ID)
	var sawExtends bool
	for _, rel := range impls {
		if rel.Kind == types.RelationExtends {
			sawExtends = true
			target, ok := indexer.Graph().Get(rel.To)
			require.True(t, ok)
			assert.Equal(t, "Animal", target.Name)
		}
	}
	assert.True(t, sawExtends, "expected Dog -> Animal extends edge")

	animals := indexer.FindSymbolsByName("Animal")
	require.Len(t, animals, 1)
	implementers := indexer.Graph().Implementations(animals[0].ID)
	require.Len(t, implementers, 1)
	assert.Equal(t, dog.ID, implementers[0].To)
}

func TestGraph_ImpactRadius(t *testing.T) {
	indexer := newPythonIndexer(t)
	defer indexer.Close()

	_, err := indexer.IndexContent("animals.py", []byte(pythonSource))
	require.NoError(t, err)

	animals := indexer.FindSymbolsByName("Animal")
	require.Len(t, animals, 1)

	radius := indexer.Graph().ImpactRadius(animals[0].ID, 0)
	var sawDog bool
	for _, node := range radius {
		if node.Symbol != nil && node.Symbol.Name == "Dog" {
			sawDog = true
		}
	}
	assert.True(t, sawDog, "Dog should be within Animal's impact radius")
}

func TestResolvePending_ResolvesCrossFileRelationship(t *testing.T) {
	indexer := newPythonIndexer(t)
	defer indexer.Close()

	_, err := indexer.IndexContent("dog.py", []byte("class Dog(Animal):\n    pass\n"))
	require.NoError(t, err)
	_, err = indexer.IndexContent("animal.py", []byte("class Animal:\n    pass\n"))
	require.NoError(t, err)

	resolved := indexer.ResolvePending()
	assert.Equal(t, 1, resolved)

	dogs := indexer.FindSymbolsByName("Dog")
	require.Len(t, dogs, 1)
	deps := indexer.Graph().Dependencies(dogs[0].ID)
	require.Len(t, deps, 1)
	assert.Equal(t, types.RelationExtends, deps[0].Kind)
}
