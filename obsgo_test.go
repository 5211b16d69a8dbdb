//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

type testEnv struct {
	ctx  *Context
	e    *obstest.Engine
	logs *observer.ObservedLogs
}

// startTest starts a context on a fresh in-memory engine. The context is
// shut down when the test ends and the engine must not have seen a call off
// its thread.
func startTest(t *testing.T, info *StartupInfo, configure ...func(*obstest.Engine)) testEnv {
	t.Helper()
	e := obstest.New()
	for _, fn := range configure {
		fn(e)
	}
	core, logs := observer.New(zap.DebugLevel)
	ctx, err := Start(info, WithEngine(e), WithLogger(zap.New(core)))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, ctx.Shutdown())
		assert.Empty(t, e.Violations())
	})
	return testEnv{ctx: ctx, e: e, logs: logs}
}

func mustSource(t *testing.T, ctx *Context, id, name string) *Source {
	t.Helper()
	src, err := ctx.NewSource(SourceInfo{ID: id, Name: name})
	require.NoError(t, err)
	return src
}

func mustScene(t *testing.T, ctx *Context, name string) *Scene {
	t.Helper()
	sc, err := ctx.NewScene(name)
	require.NoError(t, err)
	return sc
}
