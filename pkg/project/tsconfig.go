package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/codanna/codanna/pkg/codannaerr"
)

type tsconfigRaw struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
	Extends string `json:"extends"`
}

// RulesFromTSConfig reads a tsconfig.json (or jsconfig.json) file and
// extracts its baseUrl/paths alias rules, following a single level of
// "extends" the way a JS build tool's config loader would. Deeper extends
// chains are not walked (spec Non-goals: full module bundler semantics).
func RulesFromTSConfig(path string) (Rules, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, "", codannaerr.FileRead(path, err)
	}

	var raw tsconfigRaw
	if err := json.Unmarshal(stripJSONComments(content), &raw); err != nil {
		return Rules{}, "", codannaerr.ParseError("tsconfig "+path, err)
	}

	rules := Rules{BaseURL: raw.CompilerOptions.BaseURL, Paths: raw.CompilerOptions.Paths}
	if rules.Paths == nil {
		rules.Paths = make(map[string][]string)
	}

	if raw.Extends != "" {
		parentPath := raw.Extends
		if !filepath.IsAbs(parentPath) {
			parentPath = filepath.Join(filepath.Dir(path), parentPath)
		}
		if parentRules, _, err := RulesFromTSConfig(parentPath); err == nil {
			if rules.BaseURL == "" {
				rules.BaseURL = parentRules.BaseURL
			}
			for k, v := range parentRules.Paths {
				if _, ok := rules.Paths[k]; !ok {
					rules.Paths[k] = v
				}
			}
		}
	}

	return rules, Sha256Hex(content), nil
}

// stripJSONComments removes // line comments so encoding/json can parse
// tsconfig.json, which is conventionally JSONC. It is a minimal scanner,
// not a full JSONC parser: it does not special-case comment markers that
// appear inside string literals elsewhere, which is an acceptable
// simplification for the baseUrl/paths fields this reads.
func stripJSONComments(content []byte) []byte {
	out := make([]byte, 0, len(content))
	inString := false
	escaped := false
	for i := 0; i < len(content); i++ {
		c := content[i]
		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if c == '/' && i+1 < len(content) && content[i+1] == '/' {
			for i < len(content) && content[i] != '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, c)
	}
	return out
}
