package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/steplens/internal/buildinfo"
)

func TestVersionCmd_HumanReadable(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "version")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "steplens v")
	assert.Contains(t, stdout, buildinfo.GetInfo().Version)
}

func TestVersionCmd_JSON(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "version", "--json")
	require.Equal(t, 0, code)

	var info buildinfo.Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, buildinfo.GetInfo(), info)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, _, code := runCLI(t, nil, "version", "extra")
	assert.Equal(t, 1, code)
}
