package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codanna/codanna/pkg/parser/grammar"
)

func TestDefault_EnablesEveryKnownLanguage(t *testing.T) {
	d := Default()
	assert.Equal(t, ".codanna/index", d.IndexPath)

	for _, id := range []string{"rust", "python", "typescript", "javascript", "php", "go", "c", "cpp", "csharp", "kotlin"} {
		lang, ok := d.Languages[id]
		require.True(t, ok, "language %q missing from defaults", id)
		assert.True(t, lang.Enabled)
		assert.NotEmpty(t, lang.Extensions)
	}
}

func TestSettings_IsEnabled(t *testing.T) {
	s := Default()
	assert.True(t, s.IsEnabled("go"))
	assert.False(t, s.IsEnabled("cobol"), "an unknown language id defaults to disabled, not an error")
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoad_ValidFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	toml := `
index_path = "/tmp/custom-index"
threads = 4

[languages.go]
enabled = true
extensions = ["go"]

[languages.python]
enabled = false
extensions = ["py", "pyi"]
`
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-index", s.IndexPath)
	assert.Equal(t, 4, s.Threads)
	assert.True(t, s.IsEnabled("go"))
	assert.False(t, s.IsEnabled("python"))
}

func TestLoad_MalformedTOMLSurfacesParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not [ valid toml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsMissingIndexPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	// index_path is required; omitting it must fail validation rather than
	// silently produce an empty path.
	require.NoError(t, os.WriteFile(path, []byte(`threads = 0`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsLanguageWithNoExtensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	toml := `
index_path = ".codanna/index"

[languages.go]
enabled = true
extensions = []
`
	require.NoError(t, os.WriteFile(path, []byte(toml), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestChecker_IsLanguageEnabled(t *testing.T) {
	s := Default()
	s.Languages["python"] = LanguageSettings{Enabled: false, Extensions: []string{"py"}}

	c := NewChecker(s)
	assert.True(t, c.IsLanguageEnabled(grammar.ID("go")))
	assert.False(t, c.IsLanguageEnabled(grammar.ID("python")))
}
