//go:build !ios && !android && (amd64 || arm64)

package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/obinnaokechukwu/obsgo"
	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "obsprobe", cmd.Use)

	for _, name := range []string{"version", "config", "types", "run"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	for _, name := range []string{"config", "library", "log-dir"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInvalidFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "config"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		"--config", filepath.Join("testdata", "startup.yaml"),
		"--library", "/opt/obs/lib/libobs.so.0",
		"config",
	})
	require.NoError(t, cmd.Execute())

	var info obsgo.StartupInfo
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, "de-DE", info.Locale)
	assert.Equal(t, "/opt/obs/lib/libobs.so.0", info.LibraryPath)
	assert.EqualValues(t, 60, info.Video.FPSNum)
	assert.EqualValues(t, 1, info.Video.FPSDen, "unset values keep their defaults")
	assert.EqualValues(t, 44100, info.Audio.SamplesPerSec)
	assert.Equal(t, []string{"decklink"}, info.DisabledModules)
}

func TestConfigCommandMissingFile(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "config"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, obsgo.ErrConfig)
}

func TestVersionCommandWithoutLibrary(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{
		"--format", "json",
		"--library", filepath.Join(t.TempDir(), "libobs.so.0"),
		"version", "--target", "31.1.2",
	})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string        `json:"status"`
		Data   VersionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Data.Installed)
	assert.True(t, resp.Data.NeedsUpdate)
	assert.Contains(t, resp.Data.Shim, "not loaded")
}

func TestVersionCommandRejectsBadTarget(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--library", filepath.Join(t.TempDir(), "x"), "version", "--target", "31"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func executeWithEngine(t *testing.T, e *obstest.Engine, args ...string) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCommand(&RootOptions{engine: e})
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	assert.Empty(t, e.Violations())
	return buf
}

func TestTypesCommand(t *testing.T) {
	e := obstest.New()
	buf := executeWithEngine(t, e, "--format", "json", "types")

	var resp struct {
		Data TypesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "31.0.0", resp.Data.Version)
	assert.Equal(t, e.EncoderTypes, resp.Data.Encoders)
	assert.Equal(t, e.OutputTypes, resp.Data.Outputs)
	assert.False(t, e.Initialized())
}

func TestRunCommandShowsSource(t *testing.T) {
	e := obstest.New()
	buf := executeWithEngine(t, e,
		"--format", "json",
		"run", "--duration", "0", "--channel", "3",
		"--name", "probe", "--set", "width=640", "--set", "height=360",
	)

	var resp struct {
		Data RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "probe", resp.Data.Source)
	assert.Equal(t, "obsprobe", resp.Data.Scene)
	assert.EqualValues(t, 3, resp.Data.Channel)
	assert.True(t, resp.Data.Fitted)
	assert.Empty(t, resp.Data.Replay)

	assert.Equal(t, 1, e.Calls("SceneAdd"))
	assert.Zero(t, e.Live(obstest.KindSource))
	assert.Zero(t, e.Live(obstest.KindScene))
}

func TestRunCommandSavesReplay(t *testing.T) {
	e := obstest.New()
	e.ReplayPath = "/videos/probe.mkv"
	buf := executeWithEngine(t, e, "run", "--duration", "0", "--replay")

	assert.Contains(t, buf.String(), "replay saved to /videos/probe.mkv")
	assert.Equal(t, 1, e.Calls("OutputStart"))
	assert.Equal(t, 1, e.Calls("OutputStop"))
	assert.Zero(t, e.Live(obstest.KindOutput))
	assert.Zero(t, e.Live(obstest.KindEncoder))
}

func TestRunCommandUnknownSource(t *testing.T) {
	cmd := newRootCommand(&RootOptions{engine: obstest.New()})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--source", "nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunCommandBadSetting(t *testing.T) {
	cmd := newRootCommand(&RootOptions{engine: obstest.New()})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--set", "width=wide"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, obsgo.ErrInvalidOperation)
}
