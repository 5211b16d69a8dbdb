//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

func saveContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSaveBuffer(t *testing.T) {
	env := startTest(t, nil, func(e *obstest.Engine) {
		e.ReplayPath = "/videos/replay 2024-01-01.mkv"
	})
	out := mustOutput(t, env.ctx, ReplayBufferID, "replay")
	require.NoError(t, out.Start())

	path, err := out.SaveBuffer(saveContext(t))
	require.NoError(t, err)
	assert.Equal(t, "/videos/replay 2024-01-01.mkv", path)
	assert.Equal(t, 2, env.e.Calls("ProcHandlerCall"))

	require.NoError(t, out.Stop())
}

func TestSaveBufferRejectsOtherOutputs(t *testing.T) {
	env := startTest(t, nil)
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "rec")
	require.NoError(t, out.Start())

	_, err := out.SaveBuffer(saveContext(t))
	assert.ErrorIs(t, err, ErrOutputSaveBufferFailure)
	assert.Zero(t, env.e.Calls("ProcHandlerCall"), "the engine is not asked")

	require.NoError(t, out.Stop())
}

func TestSaveBufferInactive(t *testing.T) {
	env := startTest(t, nil)
	out := mustOutput(t, env.ctx, ReplayBufferID, "replay")

	_, err := out.SaveBuffer(saveContext(t))
	assert.ErrorIs(t, err, ErrOutputSaveBufferFailure)
	assert.Zero(t, env.e.Connections(), "the saved subscription is closed")
}

func TestSaveBufferWithoutPath(t *testing.T) {
	env := startTest(t, nil, func(e *obstest.Engine) {
		e.ReplayPath = ""
	})
	out := mustOutput(t, env.ctx, ReplayBufferID, "replay")
	require.NoError(t, out.Start())

	_, err := out.SaveBuffer(saveContext(t))
	require.ErrorIs(t, err, ErrOutputSaveBufferFailure)
	assert.Contains(t, err.Error(), "no replay path")

	require.NoError(t, out.Stop())
}

func TestSaveBufferCancelled(t *testing.T) {
	env := startTest(t, nil)
	out := mustOutput(t, env.ctx, ReplayBufferID, "replay")
	require.NoError(t, out.Start())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := out.SaveBuffer(ctx)
	if err != nil {
		// The saved signal may win the race against the cancelled context.
		assert.ErrorIs(t, err, ErrOutputSaveBufferFailure)
		assert.ErrorIs(t, err, context.Canceled)
	}

	require.NoError(t, out.Stop())
}

func TestSaveBufferReleased(t *testing.T) {
	env := startTest(t, nil)
	out, err := env.ctx.NewOutput(OutputInfo{ID: ReplayBufferID})
	require.NoError(t, err)
	require.NoError(t, out.Release())

	_, err = out.SaveBuffer(saveContext(t))
	assert.ErrorIs(t, err, ErrInvalidOperation)
}
