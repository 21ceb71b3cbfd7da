package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldsOf returns the Field of each issue.
func fieldsOf(issues []ValidationIssue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Field)
	}
	return out
}

func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()
	vr := Validate(nil, nil)
	assert.True(t, vr.HasErrors())
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{
			name:   "empty error reason",
			mutate: func(c *Config) { c.Steps.ErrorReason = "  " },
			field:  "steps.error_reason",
		},
		{
			name:   "negative index base",
			mutate: func(c *Config) { c.Steps.UnnamedIndexBase = intPtr(-1) },
			field:  "steps.unnamed_index_base",
		},
		{
			name:   "zero concurrency",
			mutate: func(c *Config) { c.Load.Concurrency = 0 },
			field:  "load.concurrency",
		},
		{
			name:   "unknown time format",
			mutate: func(c *Config) { c.Display.TimeFormat = "iso8601" },
			field:  "display.time_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaults()
			tt.mutate(cfg)

			vr := Validate(cfg, nil)
			require.True(t, vr.HasErrors())
			assert.Equal(t, []string{tt.field}, fieldsOf(vr.Errors()))
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := NewDefaults()
	cfg.Steps.UnnamedPrefix = ""
	cfg.Load.Concurrency = 128

	vr := Validate(cfg, nil)
	assert.False(t, vr.HasErrors())
	assert.True(t, vr.HasWarnings())
	assert.ElementsMatch(t, []string{"steps.unnamed_prefix", "load.concurrency"}, fieldsOf(vr.Warnings()))
}

func TestValidate_ZeroIndexBaseIsValid(t *testing.T) {
	t.Parallel()

	cfg := NewDefaults()
	cfg.Steps.UnnamedIndexBase = intPtr(0)
	assert.Empty(t, Validate(cfg, nil).Issues)
}

func TestValidate_UnknownKeys(t *testing.T) {
	t.Parallel()

	file, md, err := LoadFromFile(testdataPath(t, "unknown-keys.toml"))
	require.NoError(t, err)

	rc := Resolve(NewDefaults(), file, noEnv, nil)
	vr := Validate(rc.Config, &md)

	assert.False(t, vr.HasErrors())
	warnings := fieldsOf(vr.Warnings())
	assert.Contains(t, warnings, "steps.unamed_prefix")
	assert.Contains(t, warnings, "display.colour")
	assert.Contains(t, warnings, "tracing.endpoint")
	for _, w := range vr.Warnings() {
		assert.Equal(t, "unknown configuration key", w.Message)
	}
}

func TestValidate_InvalidValuesFile(t *testing.T) {
	t.Parallel()

	file, md, err := LoadFromFile(testdataPath(t, "invalid-values.toml"))
	require.NoError(t, err)

	// Validate the file as written, without defaults filling the gaps.
	vr := Validate(file, &md)
	assert.ElementsMatch(t,
		[]string{"steps.error_reason", "steps.unnamed_index_base", "load.concurrency", "display.time_format"},
		fieldsOf(vr.Errors()),
	)
}
