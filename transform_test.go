//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/obsgo/libobs"
)

func sceneWithSource(t *testing.T, env testEnv) (*Scene, *Source) {
	t.Helper()
	sc := mustScene(t, env.ctx, "main")
	src, err := sc.AddSource(SourceInfo{ID: "image_source", Name: "logo"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Release() })
	return sc, src
}

func TestFitSourceToScreen(t *testing.T) {
	env := startTest(t, nil)
	sc, src := sceneWithSource(t, env)

	fitted, err := sc.FitSourceToScreen(src)
	require.NoError(t, err)
	assert.True(t, fitted)

	info, err := sc.TransformInfo(src)
	require.NoError(t, err)
	assert.Equal(t, libobs.BoundsScaleInner, info.BoundsType)
	assert.Equal(t, Vec2{X: 1920, Y: 1080}, info.Bounds)
	assert.Equal(t, AlignLeft|AlignTop, info.Alignment)
	assert.Equal(t, AlignCenter, info.BoundsAlignment)
	assert.Equal(t, Vec2{}, info.Position)
	assert.False(t, info.CropToBounds)
}

func TestFitFollowsBaseResolution(t *testing.T) {
	env := startTest(t, nil)
	sc, src := sceneWithSource(t, env)

	vi, err := env.ctx.VideoInfo()
	require.NoError(t, err)
	vi.BaseWidth, vi.BaseHeight = 1280, 720
	vi.OutputWidth, vi.OutputHeight = 1280, 720
	require.NoError(t, env.ctx.ResetVideo(vi))

	env.e.SetBoundsCrop(itemPtr(t, env.ctx, sc, src), true)

	fitted, err := sc.FitSourceToScreen(src)
	require.NoError(t, err)
	require.True(t, fitted)

	info, err := sc.TransformInfo(src)
	require.NoError(t, err)
	assert.Equal(t, Vec2{X: 1280, Y: 720}, info.Bounds)
	assert.True(t, info.CropToBounds, "the item's crop flag is kept")
}

func TestFitSkipsLockedItem(t *testing.T) {
	env := startTest(t, nil)
	sc, src := sceneWithSource(t, env)

	require.NoError(t, sc.SetSourcePosition(src, Vec2{X: 10, Y: 20}))
	require.NoError(t, sc.SetSourceLocked(src, true))
	locked, err := sc.SourceLocked(src)
	require.NoError(t, err)
	assert.True(t, locked)

	before, err := sc.TransformInfo(src)
	require.NoError(t, err)

	fitted, err := sc.FitSourceToScreen(src)
	require.NoError(t, err)
	assert.False(t, fitted)

	after, err := sc.TransformInfo(src)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, libobs.BoundsNone, after.BoundsType)
}

func TestTransformSetters(t *testing.T) {
	env := startTest(t, nil)
	sc, src := sceneWithSource(t, env)

	require.NoError(t, sc.SetSourcePosition(src, Vec2{X: 64, Y: 32}))
	require.NoError(t, sc.SetSourceScale(src, Vec2{X: 0.5, Y: 0.25}))

	pos, err := sc.SourcePosition(src)
	require.NoError(t, err)
	assert.Equal(t, Vec2{X: 64, Y: 32}, pos)

	scale, err := sc.SourceScale(src)
	require.NoError(t, err)
	assert.Equal(t, Vec2{X: 0.5, Y: 0.25}, scale)

	want := TransformInfo{
		Position:   Vec2{X: 1, Y: 2},
		Rotation:   90,
		Scale:      Vec2{X: 2, Y: 2},
		Alignment:  AlignCenter,
		BoundsType: libobs.BoundsNone,
	}
	require.NoError(t, sc.SetTransformInfo(src, want))
	got, err := sc.TransformInfo(src)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTransformNeedsMembership(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")
	src := mustSource(t, env.ctx, "image_source", "loose")
	defer src.Release()

	_, err := sc.FitSourceToScreen(src)
	assert.ErrorIs(t, err, ErrSourceNotFound)
	_, err = sc.TransformInfo(src)
	assert.ErrorIs(t, err, ErrSourceNotFound)
	assert.ErrorIs(t, sc.SetSourceScale(nil, Vec2{}), ErrInvalidOperation)
}

func TestFitTransform(t *testing.T) {
	ti := FitTransform(640, 480, true)
	assert.Equal(t, Vec2{X: 640, Y: 480}, ti.Bounds)
	assert.Equal(t, Vec2{X: 1, Y: 1}, ti.Scale)
	assert.True(t, ti.CropToBounds)
	assert.Equal(t, ti, transformFromNative(ti.native()))
}
