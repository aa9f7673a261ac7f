package config

import "github.com/codanna/codanna/pkg/parser/grammar"

// Checker adapts Settings to registry.EnabledChecker, letting pkg/registry
// stay decoupled from the concrete settings type.
type Checker struct {
	settings Settings
}

// NewChecker wraps settings as a registry.EnabledChecker.
func NewChecker(settings Settings) Checker {
	return Checker{settings: settings}
}

// IsLanguageEnabled implements registry.EnabledChecker.
func (c Checker) IsLanguageEnabled(id grammar.ID) bool {
	return c.settings.IsEnabled(string(id))
}
