// Package codannaerr defines the error taxonomy shared across the indexer:
// every exported error names what happened and carries a concrete
// remediation hint (spec §7), mirroring the errors ported from
// original_source/src/parsing/registry.rs into idiomatic Go error values.
package codannaerr

import "fmt"

// Code classifies an error for callers that want to branch on condition
// rather than parse a message (e.g. CLI exit codes, spec §6).
type Code string

const (
	CodeFileRead           Code = "file_read"
	CodeParseError         Code = "parse_error"
	CodeLanguageNotFound   Code = "language_not_found"
	CodeLanguageDisabled   Code = "language_disabled"
	CodeExtensionNotMapped Code = "extension_not_mapped"
	CodeParserCreation     Code = "parser_creation_failed"
	CodeIncompatibleSchema Code = "incompatible_schema"
	CodeResolutionFailure  Code = "resolution_failure"
	CodeSaveFailure        Code = "save_failure"
	CodeNotFound           Code = "not_found"
	CodeConfig             Code = "config_error"
)

// Error is a codanna error: a code, a human message, an optional remediation
// hint, and an optional wrapped cause.
type Error struct {
	Code      Code
	Message   string
	Hint      string
	Cause     error
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (hint: %s)", e.Code, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an Error with the given code, message, and hint.
func New(code Code, hint string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Hint: hint}
}

// Wrap constructs an Error that wraps cause, preserving it for errors.Unwrap
// and errors.Is/As chains.
func Wrap(code Code, hint string, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Hint: hint, Cause: cause}
}

// FileRead reports a source or config file that could not be read. Callers
// skip the file, log, and continue (spec §7).
func FileRead(path string, cause error) *Error {
	return Wrap(CodeFileRead, "check the file exists and is readable", cause,
		"failed to read %q", path)
}

// ParseError reports a syntax tree (or config JSON/TOML) that could not be
// built.
func ParseError(what string, cause error) *Error {
	return Wrap(CodeParseError, "verify the file is well-formed for its language", cause,
		"failed to parse %s", what)
}

// LanguageNotFound reports a registry miss for a language id that the
// registry has never heard of.
func LanguageNotFound(languageID string) *Error {
	return New(CodeLanguageNotFound,
		"ensure the language module is compiled in and registered",
		"language %q not found in registry", languageID)
}

// LanguageDisabled reports a language the registry knows about but that
// settings have turned off.
func LanguageDisabled(languageID string) *Error {
	return New(CodeLanguageDisabled,
		fmt.Sprintf("enable it in settings.toml by setting languages.%s.enabled = true", languageID),
		"language %q is available but disabled", languageID)
}

// ExtensionNotMapped reports a file extension with no registered language.
func ExtensionNotMapped(ext string) *Error {
	return New(CodeExtensionNotMapped,
		"check if the file type is supported or add a language mapping in settings.toml",
		"no language found for extension %q", ext)
}

// ParserCreationFailed reports a parser factory failure for a language.
func ParserCreationFailed(languageID, reason string) *Error {
	return New(CodeParserCreation,
		"check the language configuration in settings.toml",
		"failed to create parser for language %q: %s", languageID, reason)
}

// IncompatibleSchema reports a persisted schema version mismatch.
func IncompatibleSchema(found, expected int) *Error {
	return New(CodeIncompatibleSchema,
		"delete the stale index directory and re-run `codanna index` to rebuild it",
		"incompatible schema version: found %d, expected %d", found, expected)
}

// SaveFailure reports a persistence failure; the in-memory index remains
// valid and the caller decides whether to retry.
func SaveFailure(path string, cause error) *Error {
	return Wrap(CodeSaveFailure, "in-memory index is still valid; retry the save once the underlying issue is fixed", cause,
		"failed to save to %q", path)
}

// NotFound reports a query that found nothing, used to distinguish "no
// result" from an actual failure at the CLI boundary (exit code 3).
func NotFound(what string) *Error {
	return New(CodeNotFound, "check the symbol name or id and try again", "%s not found", what)
}

// Config reports a settings/configuration error.
func Config(hint string, cause error, format string, args ...any) *Error {
	return Wrap(CodeConfig, hint, cause, format, args...)
}
