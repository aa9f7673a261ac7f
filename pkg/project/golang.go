package project

import (
	"os"

	"github.com/codanna/codanna/pkg/codannaerr"
	"golang.org/x/mod/modfile"
)

// ModuleRootFromGoMod parses a go.mod file and returns its module path
// (e.g. "github.com/codanna/codanna"), used to compute Go's equivalent of
// an alias rule: every package path under the module root maps to the
// corresponding directory, with no separate paths table (spec §4.E, Go
// module_path_from_file). Grounded on golang.org/x/mod/modfile, the same
// parser the go command itself uses.
func ModuleRootFromGoMod(path string) (string, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", codannaerr.FileRead(path, err)
	}
	f, err := modfile.Parse(path, content, nil)
	if err != nil {
		return "", "", codannaerr.ParseError("go.mod "+path, err)
	}
	if f.Module == nil {
		return "", "", codannaerr.ParseError("go.mod "+path, nil)
	}
	return f.Module.Mod.Path, Sha256Hex(content), nil
}
