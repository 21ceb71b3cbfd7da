package config

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	cfg := NewDefaults()
	require.NotNil(t, cfg)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "UnnamedPrefix", got: cfg.Steps.UnnamedPrefix, want: "unnamed-"},
		{name: "UnnamedIndexBase", got: cfg.Steps.IndexBase(), want: 1},
		{name: "ErrorReason", got: cfg.Steps.ErrorReason, want: "Error"},
		{name: "ClearUnexecuted", got: cfg.Steps.ClearsUnexecuted(), want: true},
		{name: "Concurrency", got: cfg.Load.Concurrency, want: 4},
		{name: "TimeFormat", got: cfg.Display.TimeFormat, want: "relative"},
		{name: "JSON", got: cfg.Display.JSON, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestNewDefaults_Independent(t *testing.T) {
	t.Parallel()
	a := NewDefaults()
	b := NewDefaults()
	*a.Steps.UnnamedIndexBase = 7
	assert.Equal(t, 1, b.Steps.IndexBase(), "defaults must not share pointers")
}

func TestNewDefaults_Valid(t *testing.T) {
	t.Parallel()
	vr := Validate(NewDefaults(), nil)
	assert.Empty(t, vr.Issues)
}

func TestStepsConfig_UnsetPointers(t *testing.T) {
	t.Parallel()
	var s StepsConfig
	assert.Equal(t, 0, s.IndexBase())
	assert.True(t, s.ClearsUnexecuted())

	off := false
	s.ClearUnexecuted = &off
	assert.False(t, s.ClearsUnexecuted())
}

func TestTemplate_MatchesDefaults(t *testing.T) {
	t.Parallel()
	var cfg Config
	md, err := toml.Decode(Template(), &cfg)
	require.NoError(t, err)
	assert.Empty(t, md.Undecoded())
	assert.Equal(t, NewDefaults(), &cfg)
}
