package log

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type captureConsole struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureConsole) ShowConsoleMsg(msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, msg)
	return true
}

func (c *captureConsole) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"error", zapcore.ErrorLevel},
		{"WARN", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{" debug ", zapcore.DebugLevel},
		{"trace", zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_Disabled(t *testing.T) {
	logger, _, closeFn, err := New(Settings{Enabled: false, Level: "nonsense"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
	assert.NoError(t, closeFn())
}

func TestNew_WriterAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, level, _, err := New(Settings{Enabled: true, Level: "info"}, WithWriter(zapcore.AddSync(&buf)))
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", zap.String("op", "TrackFX_GetParam"))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "TrackFX_GetParam")

	level.SetLevel(zapcore.DebugLevel)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, _, err := New(Settings{Enabled: true, Level: "loud"}, WithWriter(zapcore.AddSync(&bytes.Buffer{})))
	assert.Error(t, err)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bridge.log")
	logger, _, closeFn, err := New(Settings{Enabled: true, Level: "debug", Path: path})
	require.NoError(t, err)

	logger.Info("written to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Contains(t, string(data), "reaper-bridge")
}

func TestNew_EmptyPath(t *testing.T) {
	_, _, _, err := New(Settings{Enabled: true, Level: "info"})
	assert.Error(t, err)
}

func TestConsoleCore(t *testing.T) {
	console := &captureConsole{}
	logger, level, _, err := New(Settings{Enabled: true, Level: "debug", Console: true},
		WithWriter(zapcore.AddSync(&bytes.Buffer{})),
		WithConsole(console),
	)
	require.NoError(t, err)

	logger.Info("not on console")
	logger.Warn("parameter read truncated", zap.Int("available", 10))

	lines := console.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "WARN")
	assert.Contains(t, lines[0], "parameter read truncated")
	assert.Contains(t, lines[0], `"available": 10`)

	level.SetLevel(zapcore.ErrorLevel)
	logger.Warn("filtered")
	assert.Len(t, console.Lines(), 1)
}

func TestConsoleCore_Background(t *testing.T) {
	console := &captureConsole{}
	var buf bytes.Buffer
	logger, _, _, err := New(Settings{Enabled: true, Level: "info", Console: true},
		WithWriter(zapcore.AddSync(&buf)),
		WithConsole(console),
	)
	require.NoError(t, err)

	bg := Background(logger)
	bg.Warn("config watcher error")
	bg.With(zap.String("path", "config.yaml")).Error("ignoring invalid config change")
	logger.Warn("on the host thread", zap.String(backgroundKey, "background"))
	assert.Empty(t, console.Lines())
	assert.Contains(t, buf.String(), "config watcher error")
	assert.Contains(t, buf.String(), "ignoring invalid config change")

	logger.Warn("still shown")
	require.Len(t, console.Lines(), 1)
	assert.Contains(t, console.Lines()[0], "still shown")
}

type reentrantConsole struct {
	logger *zap.Logger
	calls  int
}

func (r *reentrantConsole) ShowConsoleMsg(string) bool {
	r.calls++
	r.logger.Error("console write failed")
	return false
}

func TestConsoleCore_NoRecursion(t *testing.T) {
	console := &reentrantConsole{}
	logger, _, _, err := New(Settings{Enabled: true, Level: "info", Console: true},
		WithWriter(zapcore.AddSync(&bytes.Buffer{})),
		WithConsole(console),
	)
	require.NoError(t, err)
	console.logger = logger

	logger.Error("first")
	assert.Equal(t, 1, console.calls)
}

func TestGlobal(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	assert.NotNil(t, L())
	l := zap.NewExample()
	SetLogger(l)
	assert.Same(t, l, L())
}
