//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCrashHandler(t *testing.T) {
	env := startTest(t, nil)

	var got []string
	prev := SetCrashHandler(CrashHandlerFunc(func(msg string) { got = append(got, msg) }))
	t.Cleanup(func() { SetCrashHandler(prev) })

	env.e.Crash("gs_device lost")
	assert.Equal(t, []string{"gs_device lost"}, got)
}

func TestDefaultCrashHandlerLogs(t *testing.T) {
	env := startTest(t, nil)
	core, logs := observer.New(zap.ErrorLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	prev := SetCrashHandler(nil)
	t.Cleanup(func() { SetCrashHandler(prev) })

	env.e.Crash("out of memory")
	entries := logs.FilterMessage("libobs crashed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "out of memory", entries[0].ContextMap()["message"])
}

func TestLogCallback(t *testing.T) {
	env := startTest(t, nil)

	type entry struct {
		level LogLevel
		msg   string
	}
	var got []entry
	SetLogCallback(func(level LogLevel, msg string) { got = append(got, entry{level, msg}) })
	t.Cleanup(func() { SetLogCallback(nil) })

	env.e.Log(LogWarning, "audio buffering hit the maximum")
	assert.Equal(t, []entry{{LogWarning, "audio buffering hit the maximum"}}, got)
}

func TestLogForwardingToLogger(t *testing.T) {
	env := startTest(t, nil)
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	env.e.Log(LogError, "failed to open device")
	env.e.Log(LogWarning, "dropped frames")
	env.e.Log(LogInfo, "video started")
	env.e.Log(LogDebug, "tick")

	all := logs.All()
	require.Len(t, all, 4)
	levels := []zapcore.Level{zapcore.ErrorLevel, zapcore.WarnLevel, zapcore.InfoLevel, zapcore.DebugLevel}
	for i, want := range levels {
		assert.Equal(t, want, all[i].Level, all[i].Message)
		assert.Equal(t, "libobs", all[i].ContextMap()["component"])
	}
}

func TestNewFileLogger(t *testing.T) {
	dir := t.TempDir()
	l, path, err := NewFileLogger(dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))

	l.Info("hello", zap.String("k", "v"))
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"hello"`)
	assert.Contains(t, string(raw), `"k":"v"`)
}
