package config

// Config is the top-level configuration structure mapping to steplens.toml.
type Config struct {
	Steps   StepsConfig   `toml:"steps"`
	Load    LoadConfig    `toml:"load"`
	Display DisplayConfig `toml:"display"`
}

// StepsConfig maps to the [steps] section in steplens.toml.
//
// Pointer fields distinguish "not set in file" from an explicit zero value.
type StepsConfig struct {
	UnnamedPrefix    string `toml:"unnamed_prefix"`
	UnnamedIndexBase *int   `toml:"unnamed_index_base"`
	ErrorReason      string `toml:"error_reason"`
	ClearUnexecuted  *bool  `toml:"clear_unexecuted"`
}

// LoadConfig maps to the [load] section in steplens.toml.
type LoadConfig struct {
	Concurrency int `toml:"concurrency"`
}

// DisplayConfig maps to the [display] section in steplens.toml.
type DisplayConfig struct {
	TimeFormat string `toml:"time_format"`
	JSON       bool   `toml:"json"`
}

// IndexBase returns the configured unnamed index base, or 0 when unset.
func (s StepsConfig) IndexBase() int {
	if s.UnnamedIndexBase == nil {
		return 0
	}
	return *s.UnnamedIndexBase
}

// ClearsUnexecuted reports whether steps after a failure are cleared.
// Unset means true.
func (s StepsConfig) ClearsUnexecuted() bool {
	return s.ClearUnexecuted == nil || *s.ClearUnexecuted
}
