package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/steplens/internal/steps"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

func decodeSteps(t *testing.T, stdout string) []taskRunSteps {
	t.Helper()
	var out []taskRunSteps
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), stdout)
	return out
}

func stepIDs(list []steps.ReconciledStep) []string {
	ids := make([]string, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestStepsCmd_JSONDeclaredOrder(t *testing.T) {
	stdout, stderr, code := runCLI(t, nil, "steps", "--json",
		testdataPath(t, "taskrun-failed.yaml"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code, stderr)

	out := decodeSteps(t, stdout)
	require.Len(t, out, 1)
	run := out[0]
	assert.Equal(t, "build-run-x7k2p", run.Name)
	assert.Equal(t, "ci", run.Namespace)
	assert.Equal(t, tekton.PhaseFailed, run.Phase)
	assert.Equal(t, []string{"unnamed-1", "compile", "test"}, stepIDs(run.Steps))

	assert.Equal(t, "alpine/git", run.Steps[0].Image)
	assert.Equal(t, "Error", run.Steps[1].Reason)
	require.NotNil(t, run.Steps[1].ExitCode)
	assert.Equal(t, int32(1), *run.Steps[1].ExitCode)

	assert.Equal(t, "", run.Steps[2].Reason, "step after the failure never ran")
	assert.Equal(t, steps.Status(""), run.Steps[2].Status)
	require.NotNil(t, run.Steps[2].State.Terminated)
	assert.Equal(t, "", run.Steps[2].State.Terminated.Reason)
}

func TestStepsCmd_NoClear(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "steps", "--json", "--no-clear",
		testdataPath(t, "taskrun-failed.yaml"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code)

	out := decodeSteps(t, stdout)
	require.Len(t, out, 1)
	assert.Equal(t, "Completed", out[0].Steps[2].Reason)
}

func TestStepsCmd_ClearDisabledByEnv(t *testing.T) {
	t.Setenv("STEPLENS_CLEAR_UNEXECUTED", "false")

	stdout, _, code := runCLI(t, nil, "steps", "--json",
		testdataPath(t, "taskrun-failed.yaml"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code)
	assert.Equal(t, "Completed", decodeSteps(t, stdout)[0].Steps[2].Reason)
}

func TestStepsCmd_TaskFlag(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "steps", "--json",
		"--task", testdataPath(t, "task-*.yaml"),
		testdataPath(t, "taskrun-failed.yaml"))
	require.Equal(t, 0, code)
	assert.Equal(t, []string{"unnamed-1", "compile", "test"}, stepIDs(decodeSteps(t, stdout)[0].Steps))
}

func TestStepsCmd_WithoutTaskDefinition(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "steps", "--json", testdataPath(t, "taskrun-failed.yaml"))
	require.Equal(t, 0, code)

	run := decodeSteps(t, stdout)[0]
	assert.Equal(t, []string{"test", "unnamed-1", "compile"}, stepIDs(run.Steps), "reported order is kept")
	for _, s := range run.Steps {
		assert.False(t, s.Declared)
	}
}

func TestStepsCmd_TaskNameOverride(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "steps", "--json", "--task-name", "lint", "--taskrun", "lint-run-b",
		testdataPath(t, "taskrun-list.json"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code)

	out := decodeSteps(t, stdout)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"vet", "git-source"}, stepIDs(out[0].Steps))
	assert.True(t, out[0].Steps[0].Declared)
	assert.False(t, out[0].Steps[1].Declared)
}

func TestStepsCmd_UnknownTaskName(t *testing.T) {
	_, stderr, code := runCLI(t, nil, "steps", "--task-name", "deploy", testdataPath(t, "taskrun-failed.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `task "deploy" not found`)
}

func TestStepsCmd_Table(t *testing.T) {
	stdout, _, code := runCLI(t, nil, "--no-color", "steps",
		testdataPath(t, "taskrun-list.json"), testdataPath(t, "task-build.yaml"))
	require.Equal(t, 0, code)

	assert.Contains(t, stdout, "lint-run-a (ci)")
	assert.Contains(t, stdout, "running")
	assert.Contains(t, stdout, "lint-run-b (ci)")
	assert.Contains(t, stdout, "succeeded")
	assert.Contains(t, stdout, "git-source (init)")
	assert.Contains(t, stdout, "STEP")
	assert.NotContains(t, stdout, "ignored", "non-Tekton kinds are skipped")
	assert.Less(t, strings.Index(stdout, "lint-run-a"), strings.Index(stdout, "lint-run-b"))
}

func TestStepsCmd_Stdin(t *testing.T) {
	in := strings.NewReader(`{"kind":"TaskRun","metadata":{"name":"piped"},"status":{"steps":[{"name":"a","running":{}}]}}`)
	stdout, _, code := runCLI(t, in, "steps", "--json", "-")
	require.Equal(t, 0, code)

	out := decodeSteps(t, stdout)
	require.Len(t, out, 1)
	assert.Equal(t, "piped", out[0].Name)
	assert.Equal(t, tekton.ReasonRunning, out[0].Steps[0].Reason)
}

func TestStepsCmd_JSONFromConfig(t *testing.T) {
	path := writeConfig(t, "[display]\njson = true\n")

	stdout, _, code := runCLI(t, nil, "--config", path, "steps", testdataPath(t, "taskrun-failed.yaml"))
	require.Equal(t, 0, code)
	assert.Len(t, decodeSteps(t, stdout), 1)
}

func TestStepsCmd_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "[display]\ntime_format = \"iso8601\"\n")

	_, stderr, code := runCLI(t, nil, "--config", path, "steps", testdataPath(t, "taskrun-failed.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configuration")
	assert.Contains(t, stderr, "display.time_format")
}

func TestStepsCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no args", args: []string{"steps"}, want: "requires at least 1 arg"},
		{name: "missing file", args: []string{"steps", "/nonexistent/run.yaml"}, want: "/nonexistent/run.yaml"},
		{name: "glob without match", args: []string{"steps", "/nonexistent/**/*.yaml"}, want: "matched no files"},
		{name: "only tasks", args: []string{"steps", "TASKS"}, want: "no taskruns found"},
		{name: "unknown taskrun", args: []string{"steps", "--taskrun", "nope", "RUN"}, want: `taskrun "nope" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make([]string, 0, len(tt.args))
			for _, a := range tt.args {
				switch a {
				case "TASKS":
					a = testdataPath(t, "task-build.yaml")
				case "RUN":
					a = testdataPath(t, "taskrun-failed.yaml")
				}
				args = append(args, a)
			}

			_, stderr, code := runCLI(t, nil, args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}
