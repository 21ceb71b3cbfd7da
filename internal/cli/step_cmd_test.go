package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepCmd_Detail(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "step", "--time-format", "rfc3339", "compile",
		testdataPath(t, "taskrun-failed.yaml"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code)

	assert.Contains(t, stdout, "build-run-x7k2p (ci)")
	assert.Contains(t, stdout, "compile")
	assert.Contains(t, stdout, "Error")
	assert.Contains(t, stdout, "golang:1.24")
	assert.Contains(t, stdout, "2024-05-01T10:00:20Z")
	assert.Contains(t, stdout, "containerd://abc123")
	assert.Contains(t, stdout, "50s")
}

func TestStepCmd_JSON(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "step", "--json", "unnamed-1",
		testdataPath(t, "taskrun-failed.yaml"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code)

	var m stepMatch
	require.NoError(t, json.Unmarshal([]byte(stdout), &m))
	assert.Equal(t, "build-run-x7k2p", m.TaskRun)
	assert.Equal(t, "unnamed-1", m.Step.ID)
	assert.Equal(t, "alpine/git", m.Step.Image)
	assert.True(t, m.Step.Declared)
}

func TestStepCmd_InitStep(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "step", "git-source",
		testdataPath(t, "taskrun-list.json"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "lint-run-b")
	assert.Contains(t, stdout, "injected by the controller")
}

func TestStepCmd_Ambiguous(t *testing.T) {
	_, stderr, code := runCLI(t, nil, "step", "vet",
		testdataPath(t, "taskrun-list.json"), testdataPath(t, "task-build.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "found in 2 taskruns")
	assert.Contains(t, stderr, "--taskrun")

	stdout, _, code := runCLI(t, nil, "step", "--taskrun", "lint-run-a", "vet",
		testdataPath(t, "taskrun-list.json"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "lint-run-a")
	assert.Contains(t, stdout, "Running")
}

func TestStepCmd_NotFound(t *testing.T) {
	_, stderr, code := runCLI(t, nil, "step", "deploy", testdataPath(t, "taskrun-failed.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `step "deploy" not found`)
}

func TestStepCmd_RequiresFile(t *testing.T) {
	_, _, code := runCLI(t, nil, "step", "compile")
	assert.Equal(t, 1, code)
}
