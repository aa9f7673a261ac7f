// Package config loads settings.toml (spec §6) via spf13/viper and
// validates the result with go-playground/validator/v10, generalizing the
// teacher's ad-hoc `.uispec/config.yaml` (cmd/uispec/config.go: a single
// flat YAML struct with a hand-written fallback chain) into the open,
// per-language settings schema the indexer's registry needs at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/codanna/codanna/pkg/codannaerr"
)

// LanguageSettings is one entry in the `languages` table (spec §6): which
// extensions map to this language, whether it's enabled, any config files
// its project resolver should read, and opaque parser tuning knobs.
type LanguageSettings struct {
	Enabled       bool              `mapstructure:"enabled" validate:"-"`
	Extensions    []string          `mapstructure:"extensions" validate:"required,min=1,dive,required"`
	ConfigFiles   []string          `mapstructure:"config_files"`
	ParserOptions map[string]string `mapstructure:"parser_options"`
}

// SemanticSettings configures the optional embedding/semantic-search
// subtable (spec §6).
type SemanticSettings struct {
	Enabled   bool   `mapstructure:"enabled"`
	Model     string `mapstructure:"model"`
	StorePath string `mapstructure:"store_path"`
}

// SearchSettings configures the full-text document store's runtime
// behavior (spec §6).
type SearchSettings struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"min=0"`
}

// Settings is the root settings.toml shape (spec §6): "top-level
// index_path, a languages table keyed by language id ..., plus
// semantic/search subtables".
type Settings struct {
	IndexPath string                      `mapstructure:"index_path" validate:"required"`
	Threads   int                         `mapstructure:"threads" validate:"min=0"`
	Languages map[string]LanguageSettings `mapstructure:"languages"`
	Semantic  SemanticSettings            `mapstructure:"semantic"`
	Search    SearchSettings              `mapstructure:"search"`
}

// Default returns the zero-config Settings a fresh workspace starts with:
// index under .codanna/index, every known language enabled with its usual
// extensions. Unknown language ids encountered later are silently retained
// (spec §6, "future-proofing") rather than rejected.
func Default() Settings {
	return Settings{
		IndexPath: ".codanna/index",
		Threads:   0,
		Languages: map[string]LanguageSettings{
			"rust":       {Enabled: true, Extensions: []string{"rs"}},
			"python":     {Enabled: true, Extensions: []string{"py", "pyi"}},
			"typescript": {Enabled: true, Extensions: []string{"ts", "tsx"}},
			"javascript": {Enabled: true, Extensions: []string{"js", "jsx", "mjs", "cjs"}},
			"php":        {Enabled: true, Extensions: []string{"php"}, ConfigFiles: []string{"composer.json"}},
			"go":         {Enabled: true, Extensions: []string{"go"}, ConfigFiles: []string{"go.mod"}},
			"c":          {Enabled: true, Extensions: []string{"c", "h"}},
			"cpp":        {Enabled: true, Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh"}},
			"csharp":     {Enabled: true, Extensions: []string{"cs"}},
			"kotlin":     {Enabled: true, Extensions: []string{"kt", "kts"}},
		},
		Semantic: SemanticSettings{Enabled: false, StorePath: ".codanna/semantic"},
		Search:   SearchSettings{DefaultLimit: 20},
	}
}

// Load reads settings.toml from path (or the zero-config Default if the
// file does not exist) and validates the result. A present-but-malformed
// file surfaces its parse error to the caller (spec §7, ParseError "for
// config files, surface to caller").
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	def := Default()
	v.SetDefault("threads", def.Threads)
	v.SetDefault("semantic", def.Semantic)
	v.SetDefault("search", def.Search)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound || errors.Is(err, fs.ErrNotExist) {
			return def, nil
		}
		return Settings{}, codannaerr.Config("fix the TOML syntax in "+path, err, "failed to parse %s", path)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, codannaerr.Config("check settings.toml field types against the schema", err,
			"failed to decode %s", path)
	}
	if settings.Languages == nil {
		settings.Languages = def.Languages
	}

	if err := validateSettings(settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func validateSettings(s Settings) error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return codannaerr.Config("fix the reported fields in settings.toml", err,
			"invalid settings: %s", summarizeValidationErrors(err))
	}
	for id, lang := range s.Languages {
		if err := validate.Struct(lang); err != nil {
			return codannaerr.Config(fmt.Sprintf("check languages.%s in settings.toml", id), err,
				"invalid settings for language %q: %s", id, summarizeValidationErrors(err))
		}
	}
	return nil
}

func summarizeValidationErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// IsEnabled reports whether languageID is enabled, defaulting to false for
// a language id absent from the table entirely (spec §4.C,
// "is_enabled(settings) -> bool").
func (s Settings) IsEnabled(languageID string) bool {
	lang, ok := s.Languages[languageID]
	return ok && lang.Enabled
}
