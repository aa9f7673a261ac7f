package store

import (
	"github.com/codanna/codanna/pkg/symbol"
)

// FromSymbol builds the write-through Document for sym (spec §4.I: "every
// persisted symbol emits a document with name, kind, file_path,
// module_path, doc, signature").
func FromSymbol(sym *symbol.Symbol, filePath string) Document {
	return Document{
		ID:         symbolIDKey(uint32(sym.ID)),
		Name:       sym.Name,
		Kind:       string(sym.Kind),
		FilePath:   filePath,
		ModulePath: sym.ModulePath,
		Doc:        sym.DocComment,
		Signature:  sym.Signature,
	}
}
