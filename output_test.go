//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/obsgo/libobs"
	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

func mustOutput(t *testing.T, ctx *Context, id, name string) *Output {
	t.Helper()
	out, err := ctx.NewOutput(OutputInfo{ID: id, Name: name})
	require.NoError(t, err)
	t.Cleanup(func() { _ = out.Release() })
	return out
}

func TestOutputStartStop(t *testing.T) {
	env := startTest(t, nil)
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "rec")

	starts, err := out.Signals().Start()
	require.NoError(t, err)
	defer starts.Close()

	require.NoError(t, out.Start())
	active, err := out.Active()
	require.NoError(t, err)
	assert.True(t, active)
	assert.Len(t, starts.C(), 1)

	err = out.Start()
	assert.ErrorIs(t, err, ErrOutputAlreadyActive)
	assert.Equal(t, 1, env.e.Calls("OutputStart"))

	require.NoError(t, out.Stop())
	active, err = out.Active()
	require.NoError(t, err)
	assert.False(t, active)

	err = out.Stop()
	assert.ErrorIs(t, err, ErrOutputStopFailure)
	assert.Equal(t, 1, env.e.Calls("OutputStop"))
}

func TestOutputStartFailureCarriesLastError(t *testing.T) {
	env := startTest(t, nil, func(e *obstest.Engine) {
		e.StartErrors = map[string]string{"ffmpeg_muxer": "no video encoder"}
	})
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "rec")

	err := out.Start()
	require.ErrorIs(t, err, ErrOutputStartFailure)
	assert.Contains(t, err.Error(), "no video encoder")
}

func TestOutputStopCode(t *testing.T) {
	env := startTest(t, nil, func(e *obstest.Engine) {
		e.StopCode = -4
	})
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "stream")
	require.NoError(t, out.Start())

	err := out.Stop()
	require.ErrorIs(t, err, ErrOutputStopFailure)
	var oerr *Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, -4, oerr.Status)
}

func TestOutputStopInterruptedByShutdown(t *testing.T) {
	env := startTest(t, nil, func(e *obstest.Engine) {
		e.SilentStop = true
	})
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "rec")
	require.NoError(t, out.Start())

	errc := make(chan error, 1)
	go func() { errc <- out.Stop() }()
	require.Eventually(t, func() bool { return env.e.Calls("OutputStop") == 1 }, time.Second, time.Millisecond)
	require.NoError(t, env.ctx.Shutdown())

	select {
	case err := <-errc:
		require.ErrorIs(t, err, ErrOutputStopFailure)
		assert.Contains(t, err.Error(), "subscription closed")
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after its subscription closed")
	}
}

func TestOutputPause(t *testing.T) {
	env := startTest(t, nil)
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "rec")

	assert.ErrorIs(t, out.Pause(true), ErrOutputPauseFailure, "inactive outputs cannot pause")

	require.NoError(t, out.Start())
	pauses, err := out.Signals().Pause()
	require.NoError(t, err)
	defer pauses.Close()

	require.NoError(t, out.Pause(true))
	assert.Len(t, pauses.C(), 1)
	assert.ErrorIs(t, out.Pause(true), ErrOutputPauseFailure, "already paused")
	require.NoError(t, out.Pause(false))

	require.NoError(t, out.Stop())
}

func TestOutputReleasedWhileActive(t *testing.T) {
	env := startTest(t, nil)
	out, err := env.ctx.NewOutput(OutputInfo{ID: "ffmpeg_muxer", Name: "rec"})
	require.NoError(t, err)
	require.NoError(t, out.Start())

	require.NoError(t, out.Release())
	assert.Zero(t, env.e.Live(obstest.KindOutput))
	assert.Equal(t, 1, env.logs.FilterMessage("output released while active, stopping it").Len())
}

func TestOutputEncoders(t *testing.T) {
	env := startTest(t, nil)
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "rec")

	venc, err := env.ctx.NewVideoEncoder(EncoderInfo{ID: "obs_x264", Name: "h264"})
	require.NoError(t, err)
	aenc, err := env.ctx.NewAudioEncoder(EncoderInfo{ID: "ffmpeg_aac", Name: "aac"})
	require.NoError(t, err)
	assert.False(t, venc.IsAudio())
	assert.True(t, aenc.IsAudio())
	assert.Equal(t, "obs_x264", venc.ID())
	assert.Equal(t, "aac", aenc.Name())

	assert.ErrorIs(t, out.SetVideoEncoder(aenc), ErrInvalidOperation)
	assert.ErrorIs(t, out.SetAudioEncoder(venc, 0), ErrInvalidOperation)
	assert.ErrorIs(t, out.SetAudioEncoder(aenc, -1), ErrInvalidOperation)
	assert.ErrorIs(t, out.SetAudioEncoder(aenc, libobs.MaxAudioMixes), ErrInvalidOperation)

	require.NoError(t, out.SetVideoEncoder(venc))
	require.NoError(t, out.SetAudioEncoder(aenc, 1))

	// The output holds the encoders once the caller lets go.
	require.NoError(t, venc.Release())
	require.NoError(t, aenc.Release())
	assert.Equal(t, 2, env.e.Live(obstest.KindEncoder))
	assert.ErrorIs(t, out.SetVideoEncoder(venc), ErrInvalidOperation)

	require.NoError(t, out.Release())
	assert.Zero(t, env.e.Live(obstest.KindEncoder))
}

func TestOutputUpdate(t *testing.T) {
	env := startTest(t, nil)
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "rec")

	d, err := env.ctx.NewData()
	require.NoError(t, err)
	require.NoError(t, d.SetString("path", "/videos/out.mkv"))
	require.NoError(t, out.Update(d))
	require.NoError(t, d.Release())
	assert.ErrorIs(t, out.Update(d), ErrInvalidOperation)

	settings, err := out.Settings()
	require.NoError(t, err)
	defer settings.Release()
	path, ok, err := settings.String("path")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/videos/out.mkv", path)
}

func TestNewOutputValidation(t *testing.T) {
	env := startTest(t, nil)

	_, err := env.ctx.NewOutput(OutputInfo{})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	d, err := env.ctx.NewData()
	require.NoError(t, err)
	require.NoError(t, d.Release())
	_, err = env.ctx.NewOutput(OutputInfo{ID: "ffmpeg_muxer", Settings: d})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = env.ctx.NewVideoEncoder(EncoderInfo{})
	assert.ErrorIs(t, err, ErrInvalidOperation)
}
