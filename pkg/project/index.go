// Package project persists path-alias resolution rules learned from
// project config files (tsconfig.json, go.mod, composer.json) and maps
// source files back to the config that governs them. It is a direct port
// of original_source/src/project_resolver/persist.rs, generalized from a
// TypeScript-only schema to the multi-language alias rules spec §4.F
// requires (one JSON file per language under .codanna/index/resolvers/).
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codanna/codanna/pkg/codannaerr"
)

// IndexVersion is the resolution index schema version. A persisted index
// whose Version differs is rejected with codannaerr.IncompatibleSchema
// rather than silently reinterpreted.
const IndexVersion = "1.0"

// Rules are the alias rules extracted from one config file.
type Rules struct {
	BaseURL string              `json:"baseUrl,omitempty"`
	Paths   map[string][]string `json:"paths"`
}

// Index is the persisted resolution index for one language: every config
// file's content hash (for invalidation), the glob-pattern-to-config
// mapping, and the compiled Rules per config.
type Index struct {
	Version  string            `json:"version"`
	Hashes   map[string]string `json:"hashes"`
	Mappings map[string]string `json:"mappings"`
	Rules    map[string]Rules  `json:"rules"`
}

// NewIndex returns an empty index at the current schema version.
func NewIndex() *Index {
	return &Index{
		Version:  IndexVersion,
		Hashes:   make(map[string]string),
		Mappings: make(map[string]string),
		Rules:    make(map[string]Rules),
	}
}

// Sha256Hex hashes content and returns its lowercase hex digest.
func Sha256Hex(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// NeedsRebuild reports whether configPath's rules are missing or stale
// relative to currentSHA.
func (idx *Index) NeedsRebuild(configPath, currentSHA string) bool {
	stored, ok := idx.Hashes[configPath]
	return !ok || stored != currentSHA
}

// UpdateSHA records the current content hash for configPath.
func (idx *Index) UpdateSHA(configPath, sha string) {
	idx.Hashes[configPath] = sha
}

// AddMapping records that files matching pattern are governed by configPath.
func (idx *Index) AddMapping(pattern, configPath string) {
	idx.Mappings[pattern] = configPath
}

// SetRules attaches compiled alias rules to configPath.
func (idx *Index) SetRules(configPath string, rules Rules) {
	idx.Rules[configPath] = rules
}

// ConfigForFile resolves the config file governing filePath by longest
// matching mapping prefix, matching persist.rs's get_config_for_file. Glob
// suffixes ("**/*.ts", "**/*.tsx") are trimmed before the prefix check,
// same MVP-level simplification as the original.
func (idx *Index) ConfigForFile(filePath string) (string, bool) {
	type candidate struct {
		pattern string
		config  string
	}
	var matches []candidate
	for pattern, config := range idx.Mappings {
		prefix := trimGlobSuffix(pattern)
		if strings.HasPrefix(filePath, prefix) {
			matches = append(matches, candidate{pattern: pattern, config: config})
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Slice(matches, func(i, j int) bool { return len(matches[i].pattern) > len(matches[j].pattern) })
	return matches[0].config, true
}

func trimGlobSuffix(pattern string) string {
	for _, suffix := range []string{"**/*.ts", "**/*.tsx", "**/*.go", "**/*.php"} {
		pattern = strings.TrimSuffix(pattern, suffix)
	}
	return strings.TrimSuffix(pattern, "/")
}

// Persistence loads and saves one Index file per language under
// <codannaDir>/index/resolvers/.
type Persistence struct {
	baseDir string
}

// NewPersistence returns a Persistence rooted at codannaDir (typically
// ".codanna").
func NewPersistence(codannaDir string) *Persistence {
	return &Persistence{baseDir: filepath.Join(codannaDir, "index", "resolvers")}
}

func (p *Persistence) indexPath(languageID string) string {
	return filepath.Join(p.baseDir, languageID+"_resolution.json")
}

// Load reads the persisted index for languageID, returning a fresh empty
// index if none exists yet.
func (p *Persistence) Load(languageID string) (*Index, error) {
	path := p.indexPath(languageID)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewIndex(), nil
	}
	if err != nil {
		return nil, codannaerr.FileRead(path, err)
	}

	var idx Index
	if err := json.Unmarshal(content, &idx); err != nil {
		return nil, codannaerr.ParseError("resolution index "+path, err)
	}
	if idx.Version != IndexVersion {
		return nil, codannaerr.New(codannaerr.CodeIncompatibleSchema,
			"delete the stale index directory and re-run `codanna index` to rebuild it",
			"incompatible resolution index version for %q: found %s, expected %s", languageID, idx.Version, IndexVersion)
	}
	return &idx, nil
}

// Save writes idx for languageID, creating the base directory if needed.
func (p *Persistence) Save(languageID string, idx *Index) error {
	if err := os.MkdirAll(p.baseDir, 0o755); err != nil {
		return codannaerr.SaveFailure(p.baseDir, err)
	}
	content, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return codannaerr.SaveFailure(p.indexPath(languageID), err)
	}
	path := p.indexPath(languageID)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return codannaerr.SaveFailure(path, err)
	}
	return nil
}

// Clear removes the persisted index for languageID, if present.
func (p *Persistence) Clear(languageID string) error {
	path := p.indexPath(languageID)
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return codannaerr.SaveFailure(path, err)
	}
	return nil
}
