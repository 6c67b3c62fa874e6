package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// Validate checks the configuration and returns structured results.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateVersion()...)
	results = append(results, c.validateLogLevel()...)
	results = append(results, c.validateCatalog()...)
	results = append(results, c.validatePatterns()...)
	return results
}

// Errors returns only the error-level findings.
func Errors(results []ValidationResult) []ValidationResult {
	var errs []ValidationResult
	for _, r := range results {
		if r.Level == "error" {
			errs = append(errs, r)
		}
	}
	return errs
}

func (c Config) validateVersion() []ValidationResult {
	if c.Version != 1 {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("unsupported config version %d", c.Version),
		}}
	}
	return nil
}

func (c Config) validateLogLevel() []ValidationResult {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("unknown log_level %q", c.LogLevel),
		}}
	}
	return nil
}

func (c Config) validateCatalog() []ValidationResult {
	if c.Catalog.File == "" || c.Catalog.Disabled {
		return nil
	}
	if _, err := os.Stat(c.Catalog.File); err != nil {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("catalog file %q not found", c.Catalog.File),
		}}
	}
	return nil
}

func (c Config) validatePatterns() []ValidationResult {
	var results []ValidationResult
	for _, p := range c.Register.AllowedNames {
		if !doublestar.ValidatePattern(p) {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("register.allowed_names: malformed pattern %q", p),
			})
		}
	}
	for _, p := range c.Discover.Patterns {
		if !doublestar.ValidatePathPattern(p) {
			results = append(results, ValidationResult{
				Level:   "warning",
				Message: fmt.Sprintf("discover.patterns: malformed pattern %q is ignored", p),
			})
		}
	}
	return results
}
