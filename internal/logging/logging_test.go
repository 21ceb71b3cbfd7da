package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetDefaults restores the default logger to a known state between tests.
// charmbracelet/log keeps its default logger in package state.
func resetDefaults(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		log.SetLevel(log.InfoLevel)
		log.SetOutput(os.Stderr)
		log.SetFormatter(log.TextFormatter)
	})
}

func TestOptions_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want log.Level
	}{
		{name: "default", opts: Options{}, want: log.InfoLevel},
		{name: "verbose", opts: Options{Verbose: true}, want: log.DebugLevel},
		{name: "quiet", opts: Options{Quiet: true}, want: log.ErrorLevel},
		{name: "quiet wins over verbose", opts: Options{Verbose: true, Quiet: true}, want: log.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.opts.Level())
		})
	}
}

func TestJSONFromEnv(t *testing.T) {
	t.Parallel()

	env := func(v string, ok bool) func(string) (string, bool) {
		return func(key string) (string, bool) {
			if key != FormatEnvVar {
				return "", false
			}
			return v, ok
		}
	}

	assert.True(t, JSONFromEnv(env("json", true)))
	assert.True(t, JSONFromEnv(env(" JSON ", true)))
	assert.False(t, JSONFromEnv(env("text", true)))
	assert.False(t, JSONFromEnv(env("", false)))
}

func TestSetup_SetsLevel(t *testing.T) {
	resetDefaults(t)

	Setup(Options{Verbose: true, Output: &bytes.Buffer{}})
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Setup(Options{Quiet: true, Output: &bytes.Buffer{}})
	assert.Equal(t, log.ErrorLevel, log.GetLevel())
}

func TestSetup_JSONFormatter(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{JSON: true, Output: &buf})

	New("source").Info("loaded", "path", "runs/build.yaml", "taskruns", 2)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed),
		"JSON formatter should produce valid JSON: %s", buf.String())

	assert.Equal(t, "info", parsed["level"])
	assert.Equal(t, "loaded", parsed["msg"])
	assert.Equal(t, "source", parsed["prefix"])
	assert.Equal(t, "runs/build.yaml", parsed["path"])
	assert.NotContains(t, parsed, "time", "timestamps are not reported")
}

func TestSetup_TextFormatterResetsJSON(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{JSON: true, Output: &buf})
	Setup(Options{Output: &buf})
	log.Info("text mode")

	var parsed map[string]any
	assert.Error(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed),
		"text formatter output should not be valid JSON")
	assert.Contains(t, buf.String(), "text mode")
}

func TestSetup_NoColor(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{NoColor: true, Output: &buf})
	New("cli").Error("boom", "taskrun", "build-run")

	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom")
}

func TestNew_LoggerRespectsLevel(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{Output: &buf})
	logger := New("steps")

	logger.Debug("should be hidden")
	assert.Empty(t, buf.String(), "debug should be hidden at info level")

	logger.Info("should be visible")
	assert.Contains(t, buf.String(), "should be visible")
}

func TestNew_EmptyComponent(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{JSON: true, Output: &buf})
	New("").Info("no prefix")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed))
	assert.NotContains(t, parsed, "prefix")
}

func TestSetOutput(t *testing.T) {
	resetDefaults(t)

	var buf bytes.Buffer
	Setup(Options{})
	SetOutput(&buf)

	log.Info("captured message")
	assert.Contains(t, buf.String(), "captured message")
}

// syncBuffer is a thread-safe wrapper around bytes.Buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.buf.Write(p)
}

func (sb *syncBuffer) String() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.buf.String()
}

func TestConcurrentLogging(t *testing.T) {
	resetDefaults(t)

	var buf syncBuffer
	Setup(Options{JSON: true, Output: &buf})

	const goroutines = 8
	const perGoroutine = 5

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger := New("source")
			for j := range perGoroutine {
				logger.Info("decoded", "worker", i, "file", j)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, goroutines*perGoroutine)
	for i, line := range lines {
		var parsed map[string]any
		assert.NoError(t, json.Unmarshal([]byte(line), &parsed), "line %d: %s", i, line)
	}
}
