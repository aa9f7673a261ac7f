// Package grammar binds the tree-sitter grammar for each supported language
// to a stable LanguageID string, generalizing the teacher's two-language
// switch (pkg/parser/language.go in the teacher repo) to the full set named
// in spec §1: Rust, Python, TypeScript, JavaScript, PHP, Go, C, C++, C#,
// Kotlin.
package grammar

import (
	"fmt"
	"unsafe"

	ts_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	ts_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	ts_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_kotlin "github.com/fwcd/tree-sitter-kotlin/bindings/go"
	ts_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ID is a stable per-language identifier, matching the key used in
// settings.toml's `languages` table (spec §6).
type ID string

const (
	Rust       ID = "rust"
	Python     ID = "python"
	TypeScript ID = "typescript"
	JavaScript ID = "javascript"
	PHP        ID = "php"
	Go         ID = "go"
	C          ID = "c"
	Cpp        ID = "cpp"
	CSharp     ID = "csharp"
	Kotlin     ID = "kotlin"
)

// variant selects among dialects of a single grammar package (TSX vs plain
// TypeScript, PHP vs PHP-only).
type variant string

const (
	VariantDefault variant = ""
	VariantTSX     variant = "tsx"
	VariantPHPOnly variant = "php_only"
)

// Pointer returns the unsafe.Pointer to the compiled tree-sitter grammar for
// id (and, for languages with dialects, variant). Callers wrap it with
// ts.NewLanguage before use (see pkg/parser.Manager).
func Pointer(id ID, v variant) (unsafe.Pointer, error) {
	switch id {
	case Rust:
		return ts_rust.Language(), nil
	case Python:
		return ts_python.Language(), nil
	case TypeScript:
		if v == VariantTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case JavaScript:
		return ts_javascript.Language(), nil
	case PHP:
		if v == VariantPHPOnly {
			return ts_php.LanguagePHPOnly(), nil
		}
		return ts_php.LanguagePHP(), nil
	case Go:
		return ts_go.Language(), nil
	case C:
		return ts_c.Language(), nil
	case Cpp:
		return ts_cpp.Language(), nil
	case CSharp:
		return ts_csharp.Language(), nil
	case Kotlin:
		return ts_kotlin.Language(), nil
	default:
		return nil, fmt.Errorf("grammar: unsupported language id %q", id)
	}
}

// Extensions returns the default file extensions (without a leading dot)
// that the registry pre-registers for id. Settings may add more.
func Extensions(id ID) []string {
	switch id {
	case Rust:
		return []string{"rs"}
	case Python:
		return []string{"py", "pyi"}
	case TypeScript:
		return []string{"ts", "tsx", "mts", "cts"}
	case JavaScript:
		return []string{"js", "jsx", "mjs", "cjs"}
	case PHP:
		return []string{"php"}
	case Go:
		return []string{"go"}
	case C:
		return []string{"c", "h"}
	case Cpp:
		return []string{"cpp", "cc", "cxx", "hpp", "hh"}
	case CSharp:
		return []string{"cs"}
	case Kotlin:
		return []string{"kt", "kts"}
	default:
		return nil
	}
}

// DisplayName returns the human-readable name for id.
func DisplayName(id ID) string {
	switch id {
	case Rust:
		return "Rust"
	case Python:
		return "Python"
	case TypeScript:
		return "TypeScript"
	case JavaScript:
		return "JavaScript"
	case PHP:
		return "PHP"
	case Go:
		return "Go"
	case C:
		return "C"
	case Cpp:
		return "C++"
	case CSharp:
		return "C#"
	case Kotlin:
		return "Kotlin"
	default:
		return string(id)
	}
}

// All lists every language id this build supports, in the order spec §1
// names them.
func All() []ID {
	return []ID{Rust, Python, TypeScript, JavaScript, PHP, Go, C, Cpp, CSharp, Kotlin}
}
