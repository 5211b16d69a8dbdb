//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

func TestDataGetters(t *testing.T) {
	env := startTest(t, nil)
	d, err := env.ctx.NewData()
	require.NoError(t, err)
	defer d.Release()

	require.NoError(t, d.SetString("name", "cam"))
	require.NoError(t, d.SetInt("width", 1280))
	require.NoError(t, d.SetBool("enabled", true))
	require.NoError(t, d.SetDouble("scale", 1.5))

	s, ok, err := d.String("name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cam", s)

	i, ok, err := d.Int("width")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 1280, i)

	b, ok, err := d.Bool("enabled")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)

	f, ok, err := d.Double("scale")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, f, 1e-9)

	_, ok, err = d.String("absent")
	require.NoError(t, err)
	assert.False(t, ok, "a key without user or default value is absent")
}

func TestDataDefaults(t *testing.T) {
	env := startTest(t, nil)
	d, err := env.ctx.NewData()
	require.NoError(t, err)
	defer d.Release()

	require.NoError(t, d.SetDefaultInt("fps", 30))
	v, ok, err := d.Int("fps")
	require.NoError(t, err)
	assert.True(t, ok, "a default value counts as present")
	assert.EqualValues(t, 30, v)

	require.NoError(t, d.SetInt("fps", 60))
	v, _, _ = d.Int("fps")
	assert.EqualValues(t, 60, v)

	require.NoError(t, d.Erase("fps"))
	v, ok, _ = d.Int("fps")
	assert.True(t, ok)
	assert.EqualValues(t, 30, v, "erasing the user value falls back to the default")
}

func TestDataInvalidUTF8(t *testing.T) {
	env := startTest(t, nil)
	d, err := env.ctx.NewData()
	require.NoError(t, err)
	defer d.Release()

	require.NoError(t, d.SetString("bad", "\xff\xfe"))
	_, _, err = d.String("bad")
	assert.ErrorIs(t, err, ErrStringConversion)

	_, err = d.JSON()
	assert.ErrorIs(t, err, ErrJSONParse)
}

func TestDataJSONGolden(t *testing.T) {
	env := startTest(t, nil)
	d, err := env.ctx.DataFromJSON(`{"name":"cam","width":1280,"height":720,"enabled":true,"scale":1.5}`)
	require.NoError(t, err)
	defer d.Release()

	out, err := d.JSON()
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "settings_json", []byte(out))
}

func TestDataFromInvalidJSON(t *testing.T) {
	env := startTest(t, nil)
	_, err := env.ctx.DataFromJSON(`{"unterminated":`)
	assert.ErrorIs(t, err, ErrJSONParse)
}

func TestDataReleasedReference(t *testing.T) {
	env := startTest(t, nil)
	d, err := env.ctx.NewData()
	require.NoError(t, err)
	require.NoError(t, d.Release())
	require.NoError(t, d.Release(), "second release is a no-op")

	assert.Zero(t, env.e.Live(obstest.KindData))
	_, _, err = d.Int("x")
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.ErrorIs(t, d.SetInt("x", 1), ErrInvalidOperation)
	_, err = d.Clone()
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestBulkUpdateAppliesOnce(t *testing.T) {
	env := startTest(t, nil)
	src := mustSource(t, env.ctx, "color_source", "bulk")
	defer src.Release()

	updates, err := src.Signals().Update()
	require.NoError(t, err)
	defer updates.Close()

	settings, err := src.Settings()
	require.NoError(t, err)
	defer settings.Release()

	before := env.e.Calls("SourceUpdate")
	bulk := settings.BulkUpdate().
		SetInt("width", 640).
		SetInt("height", 480).
		SetString("name", "bulk").
		SetBool("visible", true).
		SetDouble("opacity", 0.5)
	assert.Equal(t, 5, bulk.Len())
	require.NoError(t, bulk.Apply())

	assert.Equal(t, before+1, env.e.Calls("SourceUpdate"), "one native update per apply")
	assert.Len(t, updates.C(), 1, "one update signal per apply")
	assert.Zero(t, bulk.Len(), "applied changes are not applied again")

	w, ok, err := settings.Int("width")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 640, w)

	require.NoError(t, settings.BulkUpdate().Apply(), "an empty batch does nothing")
	assert.Equal(t, before+1, env.e.Calls("SourceUpdate"))
}

func TestBulkUpdateOnOutputSettings(t *testing.T) {
	env := startTest(t, nil)
	out, err := env.ctx.NewOutput(OutputInfo{ID: "ffmpeg_muxer", Name: "rec"})
	require.NoError(t, err)
	defer out.Release()

	settings, err := out.Settings()
	require.NoError(t, err)
	require.NoError(t, settings.BulkUpdate().SetString("path", "/tmp/rec.mkv").Apply())
	assert.Equal(t, 1, env.e.Calls("OutputUpdate"))

	require.NoError(t, settings.Release())
	require.NoError(t, out.Release())
	assert.Zero(t, env.e.Live(obstest.KindOutput), "settings released their owner reference")
}
