package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestModuleRootFromGoMod(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.mod")
	content := "module github.com/codanna/codanna\n\ngo 1.23\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}

	root, sha, err := ModuleRootFromGoMod(path)
	if err != nil {
		t.Fatalf("ModuleRootFromGoMod: %v", err)
	}
	if root != "github.com/codanna/codanna" {
		t.Fatalf("expected module root github.com/codanna/codanna, got %q", root)
	}
	if sha == "" {
		t.Fatal("expected a non-empty content sha")
	}
}

func TestModuleRootFromGoMod_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.mod")
	if err := os.WriteFile(path, []byte("not a go.mod file {{{"), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}
	if _, _, err := ModuleRootFromGoMod(path); err == nil {
		t.Fatal("expected an error parsing a malformed go.mod")
	}
}

func TestModuleRootFromGoMod_MissingFile(t *testing.T) {
	if _, _, err := ModuleRootFromGoMod(filepath.Join(t.TempDir(), "go.mod")); err == nil {
		t.Fatal("expected an error for a missing go.mod")
	}
}

func TestRulesFromComposerJSON_MergesAutoloadAndDev(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "composer.json")
	content := `{
		"autoload": {"psr-4": {"App\\": "src/"}},
		"autoload-dev": {"psr-4": {"App\\": "dev-src/", "Tests\\": "tests/"}}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write composer.json: %v", err)
	}

	rules, sha, err := RulesFromComposerJSON(path)
	if err != nil {
		t.Fatalf("RulesFromComposerJSON: %v", err)
	}
	if sha == "" {
		t.Fatal("expected a non-empty content sha")
	}
	dirs, ok := rules.Paths[`App\`]
	if !ok || len(dirs) != 1 || dirs[0] != "src/" {
		t.Fatalf(`expected App\ -> ["src/"] (autoload wins over autoload-dev), got %v`, dirs)
	}
	if dirs, ok := rules.Paths[`Tests\`]; !ok || len(dirs) != 1 || dirs[0] != "tests/" {
		t.Fatalf(`expected Tests\ picked up from autoload-dev, got %v`, dirs)
	}
}

func TestRulesFromTSConfig_ParsesBaseURLAndPathsWithComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsconfig.json")
	content := `{
		// a leading comment tsconfig.json conventionally allows
		"compilerOptions": {
			"baseUrl": "src",
			"paths": {"@app/*": ["src/app/*"]}
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tsconfig.json: %v", err)
	}

	rules, _, err := RulesFromTSConfig(path)
	if err != nil {
		t.Fatalf("RulesFromTSConfig: %v", err)
	}
	if rules.BaseURL != "src" {
		t.Fatalf("expected baseUrl src, got %q", rules.BaseURL)
	}
	if dirs, ok := rules.Paths["@app/*"]; !ok || len(dirs) != 1 || dirs[0] != "src/app/*" {
		t.Fatalf("expected @app/* -> [src/app/*], got %v", dirs)
	}
}

func TestRulesFromTSConfig_ExtendsOneLevel(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "tsconfig.base.json")
	base := `{"compilerOptions": {"baseUrl": "src", "paths": {"@base/*": ["src/base/*"]}}}`
	if err := os.WriteFile(basePath, []byte(base), 0o644); err != nil {
		t.Fatalf("write base config: %v", err)
	}

	childPath := filepath.Join(dir, "tsconfig.json")
	child := `{"extends": "./tsconfig.base.json", "compilerOptions": {"paths": {"@app/*": ["src/app/*"]}}}`
	if err := os.WriteFile(childPath, []byte(child), 0o644); err != nil {
		t.Fatalf("write child config: %v", err)
	}

	rules, _, err := RulesFromTSConfig(childPath)
	if err != nil {
		t.Fatalf("RulesFromTSConfig: %v", err)
	}
	if rules.BaseURL != "src" {
		t.Fatalf("expected baseUrl inherited from extends as src, got %q", rules.BaseURL)
	}
	if _, ok := rules.Paths["@app/*"]; !ok {
		t.Fatal("expected child's own @app/* path rule present")
	}
	if _, ok := rules.Paths["@base/*"]; !ok {
		t.Fatal("expected @base/* inherited from the extended config")
	}
}
