package project

import (
	"encoding/json"
	"os"

	"github.com/codanna/codanna/pkg/codannaerr"
)

type composerRaw struct {
	Autoload struct {
		PSR4 map[string][]string `json:"psr-4"`
	} `json:"autoload"`
	AutoloadDev struct {
		PSR4 map[string][]string `json:"psr-4"`
	} `json:"autoload-dev"`
}

// RulesFromComposerJSON reads a composer.json and extracts its PSR-4
// namespace-prefix-to-directory mappings as Rules.Paths, merging the
// autoload and autoload-dev sections (spec §4.E, PHP module_path_from_file
// / PSR-4 namespace resolution).
func RulesFromComposerJSON(path string) (Rules, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, "", codannaerr.FileRead(path, err)
	}

	var raw composerRaw
	if err := json.Unmarshal(content, &raw); err != nil {
		return Rules{}, "", codannaerr.ParseError("composer.json "+path, err)
	}

	paths := make(map[string][]string, len(raw.Autoload.PSR4)+len(raw.AutoloadDev.PSR4))
	for prefix, dirs := range raw.Autoload.PSR4 {
		paths[prefix] = dirs
	}
	for prefix, dirs := range raw.AutoloadDev.PSR4 {
		if _, ok := paths[prefix]; !ok {
			paths[prefix] = dirs
		}
	}

	return Rules{Paths: paths}, Sha256Hex(content), nil
}
