package resolve

import (
	"testing"

	"github.com/codanna/codanna/pkg/symbol"
	"github.com/codanna/codanna/pkg/types"
)

func TestGenericScopeResolutionOrder(t *testing.T) {
	ctx := NewGenericScope(types.FileId(1))

	ctx.AddSymbol("local_var", types.SymbolId(1), LevelLocal)
	ctx.AddSymbol("module_fn", types.SymbolId(2), LevelModule)
	ctx.AddSymbol("global_type", types.SymbolId(3), LevelGlobal)

	if id, ok := ctx.Resolve("local_var"); !ok || id != 1 {
		t.Fatalf("local_var: got (%v, %v)", id, ok)
	}
	if id, ok := ctx.Resolve("module_fn"); !ok || id != 2 {
		t.Fatalf("module_fn: got (%v, %v)", id, ok)
	}
	if id, ok := ctx.Resolve("global_type"); !ok || id != 3 {
		t.Fatalf("global_type: got (%v, %v)", id, ok)
	}
	if _, ok := ctx.Resolve("unknown"); ok {
		t.Fatal("expected unknown to be unresolved")
	}

	ctx.ClearLocalScope()
	if _, ok := ctx.Resolve("local_var"); ok {
		t.Fatal("expected local_var cleared")
	}
	if id, ok := ctx.Resolve("module_fn"); !ok || id != 2 {
		t.Fatal("module_fn should survive clearing local scope")
	}
}

func TestGenericScopeExitClearsLocalsOnFunctionReturn(t *testing.T) {
	ctx := NewGenericScope(types.FileId(1))
	ctx.EnterScope(ScopeFrame{Kind: ScopeKindFunction, Name: "inner"})
	ctx.AddSymbol("x", types.SymbolId(9), LevelLocal)
	if _, ok := ctx.Resolve("x"); !ok {
		t.Fatal("expected x bound inside function scope")
	}
	ctx.EnterScope(ScopeFrame{Kind: ScopeKindBlock})
	ctx.ExitScope() // back to ScopeKindFunction frame -> locals cleared
	if _, ok := ctx.Resolve("x"); ok {
		t.Fatal("expected x cleared on returning into the function frame")
	}
	ctx.ExitScope() // pop function frame, now top is Global -> no clear triggered here either
}

func TestGenericInheritanceResolverMethodResolution(t *testing.T) {
	r := NewGenericInheritanceResolver()
	r.AddInheritance("Child", "Parent", "extends")
	r.AddInheritance("Parent", "GrandParent", "extends")

	r.AddTypeMethods("GrandParent", []string{"method1"})
	r.AddTypeMethods("Parent", []string{"method2"})
	r.AddTypeMethods("Child", []string{"method3"})

	if owner, ok := r.ResolveMethod("Child", "method3"); !ok || owner != "Child" {
		t.Fatalf("method3: got (%q, %v)", owner, ok)
	}
	if owner, ok := r.ResolveMethod("Child", "method2"); !ok || owner != "Parent" {
		t.Fatalf("method2: got (%q, %v)", owner, ok)
	}
	if owner, ok := r.ResolveMethod("Child", "method1"); !ok || owner != "GrandParent" {
		t.Fatalf("method1: got (%q, %v)", owner, ok)
	}

	chain := r.InheritanceChain("Child")
	want := map[string]bool{"Child": true, "Parent": true, "GrandParent": true}
	for _, c := range chain {
		delete(want, c)
	}
	if len(want) != 0 {
		t.Fatalf("chain missing entries: %v", want)
	}

	if !r.IsSubtype("Child", "Parent") {
		t.Fatal("Child should be subtype of Parent")
	}
	if !r.IsSubtype("Child", "GrandParent") {
		t.Fatal("Child should be subtype of GrandParent")
	}
	if r.IsSubtype("Parent", "Child") {
		t.Fatal("Parent must not be subtype of Child")
	}
}

func TestGenericScopePopulateImportsClassifiesOriginAndAlias(t *testing.T) {
	ctx := NewGenericScope(types.FileId(1))

	imports := []symbol.Import{
		{Path: "serde", HasAlias: false},
		{Path: "crate::util", HasAlias: false},
		{Path: "numpy", Alias: "np", HasAlias: true},
	}
	classify := func(path string) bool {
		return path == "serde" || path == "numpy"
	}

	resolved := ctx.PopulateImports(imports, classify)
	if len(resolved) != 3 {
		t.Fatalf("expected 3 imports back, got %d", len(resolved))
	}
	if resolved[0].Origin != symbol.OriginExternal {
		t.Fatalf("serde: expected OriginExternal, got %v", resolved[0].Origin)
	}
	if resolved[1].Origin != symbol.OriginInternal {
		t.Fatalf("crate::util: expected OriginInternal, got %v", resolved[1].Origin)
	}
	if resolved[2].Origin != symbol.OriginExternal {
		t.Fatalf("numpy: expected OriginExternal, got %v", resolved[2].Origin)
	}

	if !ctx.IsExternalImport("serde") {
		t.Fatal("expected serde bound as external")
	}
	if !ctx.IsExternalImport("np") {
		t.Fatal("expected alias np bound as external, not the full path")
	}
	if ctx.IsExternalImport("numpy") {
		t.Fatal("unaliased path numpy must not be bound when an alias was given")
	}
	if ctx.IsExternalImport("util") {
		t.Fatal("crate::util resolved internal, util must not read as external")
	}
	if ctx.IsExternalImport("never_imported") {
		t.Fatal("name with no binding must not read as external")
	}

	names := ctx.ExternalBindingNames()
	want := map[string]bool{"serde": true, "np": true}
	if len(names) != len(want) {
		t.Fatalf("expected %d external binding names, got %v", len(want), names)
	}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected external binding name %q", n)
		}
	}
}

func TestGenericScopeRegisterImportBindingDirect(t *testing.T) {
	ctx := NewGenericScope(types.FileId(1))
	ctx.RegisterImportBinding("fmt", symbol.OriginInternal)
	ctx.RegisterImportBinding("lodash", symbol.OriginExternal)

	if ctx.IsExternalImport("fmt") {
		t.Fatal("fmt registered internal, must not read as external")
	}
	if !ctx.IsExternalImport("lodash") {
		t.Fatal("lodash registered external, must read as external")
	}

	// empty local name is ignored rather than recorded as a binding.
	ctx.RegisterImportBinding("", symbol.OriginExternal)
	if ctx.IsExternalImport("") {
		t.Fatal("empty local name must never be registered")
	}
}

func TestLocalImportBindingNameDerivesFromPathSeparators(t *testing.T) {
	cases := []struct {
		imp  symbol.Import
		want string
	}{
		{symbol.Import{Path: "std::collections::HashMap"}, "HashMap"},
		{symbol.Import{Path: "App\\Models\\User"}, "User"},
		{symbol.Import{Path: "os.path"}, "path"},
		{symbol.Import{Path: "./components/Button"}, "Button"},
		{symbol.Import{Path: "lodash", Alias: "_", HasAlias: true}, "_"},
		{symbol.Import{Path: "simple"}, "simple"},
	}
	for _, c := range cases {
		if got := localImportBindingName(c.imp); got != c.want {
			t.Errorf("localImportBindingName(%+v) = %q, want %q", c.imp, got, c.want)
		}
	}
}

func TestGenericInheritanceResolverAllMethodsDeduplicates(t *testing.T) {
	r := NewGenericInheritanceResolver()
	r.AddInheritance("B", "A", "extends")
	r.AddTypeMethods("A", []string{"shared", "onlyA"})
	r.AddTypeMethods("B", []string{"shared", "onlyB"})

	methods := r.AllMethods("B")
	count := make(map[string]int)
	for _, m := range methods {
		count[m]++
	}
	if count["shared"] != 1 {
		t.Fatalf("expected shared to appear once, got %d", count["shared"])
	}
	if count["onlyA"] != 1 || count["onlyB"] != 1 {
		t.Fatalf("expected both onlyA and onlyB present, got %v", count)
	}
}
