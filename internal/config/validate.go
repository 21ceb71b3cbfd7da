package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an informational validation issue; the configuration works
	// but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "steps.error_reason"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// validTimeFormats is the set of valid values for display.time_format.
var validTimeFormats = map[string]bool{
	"relative": true,
	"rfc3339":  true,
}

// maxConcurrency is the load.concurrency value above which a warning is issued.
const maxConcurrency = 64

// Validate checks the configuration for correctness and completeness.
// It performs semantic validation and unknown key detection.
//
// Parameters:
//   - cfg: the configuration to validate
//   - meta: TOML metadata from BurntSushi/toml (may be nil if no file was loaded)
//
// Returns validation results. Check HasErrors() to determine if the config is usable.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateSteps(vr, &cfg.Steps)
	validateLoad(vr, &cfg.Load)
	validateDisplay(vr, &cfg.Display)
	validateUnknownKeys(vr, meta)

	return vr
}

// validateSteps checks the [steps] section for errors and warnings.
func validateSteps(vr *ValidationResult, s *StepsConfig) {
	// Error: without an error reason no step can mark a failure.
	if strings.TrimSpace(s.ErrorReason) == "" {
		addError(vr, "steps.error_reason", "must not be empty")
	}

	// Error: the index base is added to a 0-based position.
	if s.IndexBase() < 0 {
		addError(vr, "steps.unnamed_index_base",
			fmt.Sprintf("must be 0 or greater, got %d", s.IndexBase()))
	}

	// Warning: an empty prefix makes synthetic names bare numbers.
	if s.UnnamedPrefix == "" {
		addWarning(vr, "steps.unnamed_prefix",
			"is empty; unnamed steps will be matched by number only")
	}
}

// validateLoad checks the [load] section.
func validateLoad(vr *ValidationResult, l *LoadConfig) {
	if l.Concurrency < 1 {
		addError(vr, "load.concurrency",
			fmt.Sprintf("must be at least 1, got %d", l.Concurrency))
		return
	}
	if l.Concurrency > maxConcurrency {
		addWarning(vr, "load.concurrency",
			fmt.Sprintf("%d is unusually high; values above %d rarely help", l.Concurrency, maxConcurrency))
	}
}

// validateDisplay checks the [display] section.
func validateDisplay(vr *ValidationResult, d *DisplayConfig) {
	if !validTimeFormats[d.TimeFormat] {
		addError(vr, "display.time_format",
			fmt.Sprintf("unrecognized time format %q; must be one of: relative, rfc3339", d.TimeFormat))
	}
}

// validateUnknownKeys checks for TOML keys that did not map to any config struct field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
