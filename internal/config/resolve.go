package config

import (
	"strconv"
)

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from the steplens.toml config file.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// ResolvedConfig holds the fully-resolved configuration with source tracking.
// The Config field contains the merged values; Sources tracks where each came from.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // key is dotted path, e.g., "steps.error_reason"
	Path    string                  // path to the config file used (empty if none)
}

// CLIOverrides captures flag values that can override configuration.
// A nil field means "not set" (do not override).
type CLIOverrides struct {
	Concurrency     *int
	TimeFormat      *string
	ClearUnexecuted *bool
	JSON            *bool
}

// EnvFunc is a function that looks up environment variables.
// Default implementation is os.LookupEnv. Injected for testability.
type EnvFunc func(key string) (string, bool)

// Resolve merges configuration from all sources in priority order:
// CLI flags > environment variables > config file > defaults.
//
// Parameters:
//   - defaults: built-in default config (from NewDefaults())
//   - fileConfig: parsed config from steplens.toml (nil if no file found)
//   - envFn: function to look up environment variables
//   - overrides: CLI flag values (nil fields mean "not set")
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	// Layer 1: Start with defaults as the base.
	resolveFrom(rc, defaults, SourceDefault, true)

	// Layer 2: Merge file config on top (zero values mean "not set in file").
	if fileConfig != nil {
		resolveFrom(rc, fileConfig, SourceFile, false)
	}

	// Layer 3: Merge environment variables on top.
	resolveFromEnv(rc, envFn)

	// Layer 4: Merge CLI overrides on top.
	resolveFromCLI(rc, overrides)

	return rc
}

// --- Layers 1 and 2: defaults and file ---

// resolveFrom copies src into rc. With force set, every field is copied and
// attributed to source; otherwise only non-zero fields are.
func resolveFrom(rc *ResolvedConfig, src *Config, source ConfigSource, force bool) {
	s := &rc.Config.Steps
	merge := mergeString
	if force {
		merge = setString
	}

	merge(&s.UnnamedPrefix, src.Steps.UnnamedPrefix, "steps.unnamed_prefix", source, rc.Sources)
	merge(&s.ErrorReason, src.Steps.ErrorReason, "steps.error_reason", source, rc.Sources)
	if src.Steps.UnnamedIndexBase != nil || force {
		s.UnnamedIndexBase = copyIntPtr(src.Steps.UnnamedIndexBase)
		rc.Sources["steps.unnamed_index_base"] = source
	}
	if src.Steps.ClearUnexecuted != nil || force {
		s.ClearUnexecuted = copyBoolPtr(src.Steps.ClearUnexecuted)
		rc.Sources["steps.clear_unexecuted"] = source
	}

	if src.Load.Concurrency != 0 || force {
		rc.Config.Load.Concurrency = src.Load.Concurrency
		rc.Sources["load.concurrency"] = source
	}

	merge(&rc.Config.Display.TimeFormat, src.Display.TimeFormat, "display.time_format", source, rc.Sources)
	if src.Display.JSON || force {
		rc.Config.Display.JSON = src.Display.JSON
		rc.Sources["display.json"] = source
	}
}

// --- Layer 3: Environment ---

// Environment variable mapping:
//
//	STEPLENS_UNNAMED_PREFIX    -> steps.unnamed_prefix
//	STEPLENS_ERROR_REASON      -> steps.error_reason
//	STEPLENS_CLEAR_UNEXECUTED  -> steps.clear_unexecuted
//	STEPLENS_CONCURRENCY       -> load.concurrency
//	STEPLENS_TIME_FORMAT       -> display.time_format
//
// Values that fail to parse are ignored.
func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	c := rc.Config

	if val, ok := envFn("STEPLENS_UNNAMED_PREFIX"); ok {
		c.Steps.UnnamedPrefix = val
		rc.Sources["steps.unnamed_prefix"] = SourceEnv
	}
	if val, ok := envFn("STEPLENS_ERROR_REASON"); ok {
		c.Steps.ErrorReason = val
		rc.Sources["steps.error_reason"] = SourceEnv
	}
	if val, ok := envFn("STEPLENS_CLEAR_UNEXECUTED"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Steps.ClearUnexecuted = &b
			rc.Sources["steps.clear_unexecuted"] = SourceEnv
		}
	}
	if val, ok := envFn("STEPLENS_CONCURRENCY"); ok {
		if n, err := strconv.Atoi(val); err == nil {
			c.Load.Concurrency = n
			rc.Sources["load.concurrency"] = SourceEnv
		}
	}
	if val, ok := envFn("STEPLENS_TIME_FORMAT"); ok {
		c.Display.TimeFormat = val
		rc.Sources["display.time_format"] = SourceEnv
	}
}

// --- Layer 4: CLI overrides ---

func resolveFromCLI(rc *ResolvedConfig, overrides *CLIOverrides) {
	c := rc.Config

	if overrides.Concurrency != nil {
		c.Load.Concurrency = *overrides.Concurrency
		rc.Sources["load.concurrency"] = SourceCLI
	}
	if overrides.TimeFormat != nil {
		c.Display.TimeFormat = *overrides.TimeFormat
		rc.Sources["display.time_format"] = SourceCLI
	}
	if overrides.ClearUnexecuted != nil {
		v := *overrides.ClearUnexecuted
		c.Steps.ClearUnexecuted = &v
		rc.Sources["steps.clear_unexecuted"] = SourceCLI
	}
	if overrides.JSON != nil {
		c.Display.JSON = *overrides.JSON
		rc.Sources["display.json"] = SourceCLI
	}
}

// --- Helpers ---

// setString unconditionally sets the target to the given value and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty (non-zero string).
// For file-layer merging, an empty string in the file means "not set in file",
// so it does not override the default.
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyBoolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
