//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

func withPaths() *StartupInfo {
	info := DefaultStartupInfo()
	info.Paths = Paths{
		LibobsData: "/usr/share/obs/libobs",
		PluginBin:  "/usr/lib/obs-plugins/%module%",
		PluginData: "/usr/share/obs/obs-plugins/%module%",
	}
	return info
}

func TestStartRunsStepsInOrder(t *testing.T) {
	env := startTest(t, withPaths())

	h := env.e.History()
	order := []string{"Startup", "AddDataPath", "AddModulePath", "LoadAllModules", "PostLoadModules", "ResetVideo", "ResetAudio"}
	last := -1
	for _, op := range order {
		i := slices.Index(h, op)
		require.GreaterOrEqual(t, i, 0, "%s was not called", op)
		assert.Greater(t, i, last, "%s out of order", op)
		last = i
	}
	assert.Equal(t, []string{"/usr/share/obs/libobs"}, env.e.DataPaths())
	assert.True(t, env.e.Initialized())
}

func TestStartTwiceFails(t *testing.T) {
	startTest(t, nil)

	_, err := Start(nil, WithEngine(obstest.New()))
	assert.ErrorIs(t, err, ErrThreadFailure)
}

func TestStartFailureUnwinds(t *testing.T) {
	e := obstest.New()
	e.FailStartup = true
	_, err := Start(nil, WithEngine(e))
	require.ErrorIs(t, err, ErrStartupFailure)

	e = obstest.New()
	e.FailResetAudio = true
	_, err = Start(withPaths(), WithEngine(e))
	require.ErrorIs(t, err, ErrStartupFailure)
	assert.Equal(t, 1, e.Calls("Shutdown"), "a started engine is shut down again")
	assert.Empty(t, e.DataPaths(), "the data path is removed again")
	assert.False(t, e.Initialized())

	// The process is free for the next engine.
	startTest(t, nil)
}

func TestStartResetVideoFailure(t *testing.T) {
	e := obstest.New()
	e.ResetVideoStatus = libobs.VideoNotSupported
	_, err := Start(nil, WithEngine(e))
	require.ErrorIs(t, err, ErrResetVideoFailure)

	var oe *Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, int(libobs.VideoNotSupported), oe.Status)
	assert.Equal(t, 1, e.Calls("Shutdown"))
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	info := DefaultStartupInfo()
	info.Video.FPSDen = 0
	e := obstest.New()
	_, err := Start(info, WithEngine(e))
	assert.ErrorIs(t, err, ErrConfig)
	assert.Zero(t, e.Calls("Startup"))
}

func TestModuleRegistration(t *testing.T) {
	info := DefaultStartupInfo()
	info.DisabledModules = []string{"decklink"}

	t.Run("older engines get the safe list", func(t *testing.T) {
		env := startTest(t, info, func(e *obstest.Engine) { e.VersionString = "31.1.2" })
		safe := env.e.SafeModules()
		assert.Contains(t, safe, "obs-x264")
		assert.NotContains(t, safe, "decklink")
		assert.NotContains(t, safe, "obs-websocket")
		assert.NotContains(t, safe, "frontend-tools")
		assert.Empty(t, env.e.DisabledModules())
	})

	t.Run("32 and newer get the deny list", func(t *testing.T) {
		env := startTest(t, info, func(e *obstest.Engine) { e.VersionString = "32.0.0-rc1" })
		assert.ElementsMatch(t, []string{"obs-websocket", "frontend-tools", "decklink"}, env.e.DisabledModules())
		assert.Empty(t, env.e.SafeModules())
	})

	t.Run("missing deny list support falls back", func(t *testing.T) {
		env := startTest(t, info, func(e *obstest.Engine) {
			e.VersionString = "32.1.0"
			e.NoDisabledModules = true
		})
		assert.Empty(t, env.e.DisabledModules())
		assert.Contains(t, env.e.SafeModules(), "linux-v4l2")
	})

	t.Run("failed modules are logged", func(t *testing.T) {
		env := startTest(t, nil, func(e *obstest.Engine) { e.FailedModules = []string{"obs-qsv11"} })
		assert.Equal(t, 1, env.logs.FilterMessage("some modules failed to load").Len())
	})
}

func TestParseEngineVersion(t *testing.T) {
	cases := map[string]int64{"31.1.2": 31, "32": 32, "v30.2": 30, "32.0.0-rc1": 32, " 29.1.3 ": 29}
	for in, major := range cases {
		v, err := ParseEngineVersion(in)
		require.NoError(t, err, in)
		assert.Equal(t, major, v.Major, in)
	}
	_, err := ParseEngineVersion("thirty-two")
	assert.Error(t, err)
}

func TestResetVideo(t *testing.T) {
	env := startTest(t, nil)

	vi, err := env.ctx.VideoInfo()
	require.NoError(t, err)
	vi.BaseWidth, vi.BaseHeight = 1280, 720
	require.NoError(t, env.ctx.ResetVideo(vi))

	got, err := env.ctx.VideoInfo()
	require.NoError(t, err)
	assert.EqualValues(t, 1280, got.BaseWidth)
	assert.EqualValues(t, 720, got.BaseHeight)

	vi.GraphicsModule = "libobs-d3d11-but-different"
	err = env.ctx.ResetVideo(vi)
	assert.ErrorIs(t, err, ErrResetVideoFailureGraphicsModule)
}

func TestTypeEnumeration(t *testing.T) {
	env := startTest(t, nil)

	enc, err := env.ctx.EncoderTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"obs_x264", "ffmpeg_aac"}, enc)

	src, err := env.ctx.SourceTypes()
	require.NoError(t, err)
	assert.Contains(t, src, "color_source")

	out, err := env.ctx.OutputTypes()
	require.NoError(t, err)
	assert.Contains(t, out, ReplayBufferID)

	v, err := env.ctx.Version()
	require.NoError(t, err)
	assert.Equal(t, "31.0.0", v)
}

func TestRunExecutesOnAffinityThread(t *testing.T) {
	env := startTest(t, nil)

	if _, ok := env.ctx.Runtime().ThreadID(); !ok {
		t.Skip("no thread ids on this platform")
	}
	var onThread bool
	err := env.ctx.Run(func(tok affinity.Token, e libobs.Engine) error {
		onThread = env.ctx.Runtime().OnThread() && tok.Valid()
		return nil
	})
	require.NoError(t, err)
	assert.True(t, onThread)
}

func TestShutdown(t *testing.T) {
	env := startTest(t, nil)

	require.NoError(t, env.ctx.Shutdown())
	assert.True(t, env.ctx.Closed())
	assert.False(t, env.e.Initialized())
	assert.NoError(t, env.ctx.Shutdown(), "second shutdown is a no-op")

	_, err := env.ctx.NewScene("late")
	assert.ErrorIs(t, err, ErrThreadFailure)
	err = env.ctx.Run(func(affinity.Token, libobs.Engine) error { return nil })
	assert.ErrorIs(t, err, ErrThreadFailure)
}
