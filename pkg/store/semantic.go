package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/codanna/codanna/pkg/codannaerr"
)

// SemanticStore is the optional vector-embedding store (spec §4.I, §6): a
// directory containing metadata.json plus one opaque embedding blob per
// indexed symbol with a non-empty doc. Its absence is not an error —
// LoadSemanticStore returns (nil, false, nil) when the directory is
// missing, matching spec §4.I's "load is opportunistic".
type SemanticStore interface {
	// PutEmbedding stores the embedding vector for a symbol id.
	PutEmbedding(id string, vector []float32)
	// Embedding returns the stored vector for id, if any.
	Embedding(id string) ([]float32, bool)
	// Save persists the store to dir.
	Save(dir string) error
}

// DirSemanticStore is a SemanticStore backed by one file per embedding
// under dir, plus a metadata.json recording dimension and count — the
// directory layout spec §6 describes ("metadata.json plus embedding
// blobs, opaque to the core").
type DirSemanticStore struct {
	vectors map[string][]float32
	dim     int
}

// NewDirSemanticStore constructs an empty DirSemanticStore.
func NewDirSemanticStore() *DirSemanticStore {
	return &DirSemanticStore{vectors: make(map[string][]float32)}
}

// PutEmbedding stores vector for id. The first call fixes Dim; later calls
// with a mismatched length are dropped (callers should only ever store
// vectors from one embedding model per store).
func (d *DirSemanticStore) PutEmbedding(id string, vector []float32) {
	if d.dim == 0 {
		d.dim = len(vector)
	}
	if len(vector) != d.dim {
		return
	}
	d.vectors[id] = vector
}

// Embedding returns the stored vector for id.
func (d *DirSemanticStore) Embedding(id string) ([]float32, bool) {
	v, ok := d.vectors[id]
	return v, ok
}

type semanticMetadata struct {
	SchemaVersion int `json:"schema_version"`
	Dimension     int `json:"dimension"`
	Count         int `json:"count"`
}

// Save writes metadata.json and one "<id>.vec.json" file per embedding
// into dir.
func (d *DirSemanticStore) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return codannaerr.SaveFailure(dir, err)
	}

	meta := semanticMetadata{SchemaVersion: SchemaVersion, Dimension: d.dim, Count: len(d.vectors)}
	metaPath := filepath.Join(dir, "metadata.json")
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return codannaerr.SaveFailure(metaPath, err)
	}
	if err := os.WriteFile(metaPath, metaBytes, 0o644); err != nil {
		return codannaerr.SaveFailure(metaPath, err)
	}

	for id, vec := range d.vectors {
		blobPath := filepath.Join(dir, id+".vec.json")
		blob, err := json.Marshal(vec)
		if err != nil {
			return codannaerr.SaveFailure(blobPath, err)
		}
		if err := os.WriteFile(blobPath, blob, 0o644); err != nil {
			return codannaerr.SaveFailure(blobPath, err)
		}
	}
	return nil
}

// LoadSemanticStore loads a DirSemanticStore from dir. A missing directory
// is not an error: it returns (nil, false, nil), matching spec §4.I's
// "load is opportunistic and its absence is not an error".
func LoadSemanticStore(dir string) (*DirSemanticStore, bool, error) {
	metaPath := filepath.Join(dir, "metadata.json")
	metaBytes, err := os.ReadFile(metaPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, codannaerr.FileRead(metaPath, err)
	}

	var meta semanticMetadata
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, false, codannaerr.ParseError(metaPath, err)
	}
	if meta.SchemaVersion != SchemaVersion {
		return nil, false, codannaerr.IncompatibleSchema(meta.SchemaVersion, SchemaVersion)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false, codannaerr.FileRead(dir, err)
	}

	const suffix = ".vec.json"
	s := NewDirSemanticStore()
	s.dim = meta.Dimension
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || len(name) <= len(suffix) || name[len(name)-len(suffix):] != suffix {
			continue
		}
		id := name[:len(name)-len(suffix)]
		blob, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, false, codannaerr.FileRead(name, err)
		}
		var vec []float32
		if err := json.Unmarshal(blob, &vec); err != nil {
			return nil, false, codannaerr.ParseError(name, err)
		}
		s.vectors[id] = vec
	}
	return s, true, nil
}
