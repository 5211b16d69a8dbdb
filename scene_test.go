//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

func scenePtrs(t *testing.T, ctx *Context, sc *Scene) (libobs.Scene, libobs.Source) {
	t.Helper()
	var p libobs.Scene
	var src libobs.Source
	require.NoError(t, ctx.Run(func(tok affinity.Token, e libobs.Engine) error {
		p = sc.Handle().Ptr(tok)
		src = e.SceneGetSource(p)
		return nil
	}))
	return p, src
}

func itemPtr(t *testing.T, ctx *Context, sc *Scene, src *Source) libobs.SceneItem {
	t.Helper()
	h, ok := sc.item(src)
	require.True(t, ok, "source %s is not in scene %s", src.Name(), sc.Name())
	var it libobs.SceneItem
	require.NoError(t, ctx.Run(func(tok affinity.Token, _ libobs.Engine) error {
		it = h.Ptr(tok)
		return nil
	}))
	return it
}

func TestSceneOwnsItsMembers(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")
	scp, _ := scenePtrs(t, env.ctx, sc)

	src, err := sc.AddSource(SourceInfo{ID: "color_source", Name: "bg"})
	require.NoError(t, err)
	p := sourcePtr(t, env.ctx, src)
	require.NoError(t, src.Release())

	assert.Equal(t, 1, sc.memberCount())
	assert.Equal(t, 1, sc.itemCount())
	assert.Equal(t, 1, env.e.SceneItemCount(scp))
	assert.Positive(t, env.e.Refs(unsafe.Pointer(p)), "the scene keeps the source alive")

	again, err := sc.SourceByName("bg")
	require.NoError(t, err)
	assert.Equal(t, "color_source", again.ID())
	assert.True(t, sc.HasSceneItem(again))

	require.NoError(t, sc.RemoveSource(again))
	assert.Zero(t, sc.memberCount())
	assert.Zero(t, sc.itemCount())
	assert.Zero(t, env.e.SceneItemCount(scp))
	assert.False(t, sc.HasSceneItem(again))

	require.NoError(t, again.Release())
	assert.Zero(t, env.e.Refs(unsafe.Pointer(p)), "the last reference frees the source")

	_, err = sc.SourceByName("bg")
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestSceneRejectsDuplicateMember(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")
	src := mustSource(t, env.ctx, "image_source", "logo")
	defer src.Release()

	require.NoError(t, sc.AddExistingSource(src))
	err := sc.AddExistingSource(src)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	assert.Equal(t, 1, sc.memberCount())
	assert.Equal(t, 1, sc.itemCount())
	assert.Equal(t, 2, env.ctx.LiveReferences(), "scene and source")
}

func TestSceneRemoveMissingSource(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")
	src := mustSource(t, env.ctx, "color_source", "stray")
	defer src.Release()

	err := sc.RemoveSource(src)
	assert.ErrorIs(t, err, ErrSourceNotFound)
	assert.Equal(t, KindSourceNotFound, KindOf(err))

	assert.ErrorIs(t, sc.RemoveSource(nil), ErrInvalidOperation)
}

func TestSceneSources(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")
	for _, name := range []string{"a", "b", "c"} {
		src, err := sc.AddSource(SourceInfo{ID: "color_source", Name: name})
		require.NoError(t, err)
		require.NoError(t, src.Release())
	}

	members, err := sc.Sources()
	require.NoError(t, err)
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name())
		assert.NoError(t, m.Release())
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, 3, sc.memberCount())
}

func TestSceneReleaseFreesMembers(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")
	src, err := sc.AddSource(SourceInfo{ID: "color_source", Name: "bg"})
	require.NoError(t, err)
	require.NoError(t, src.Release())

	require.NoError(t, sc.Release())
	assert.Zero(t, env.e.Live(obstest.KindScene))
	assert.Zero(t, env.e.Live(obstest.KindSceneItem))
	assert.Zero(t, env.e.Live(obstest.KindSource))
	assert.Zero(t, env.ctx.LiveReferences())

	_, err = sc.AddSource(SourceInfo{ID: "color_source"})
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestSceneFilters(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")
	src, err := sc.AddSource(SourceInfo{ID: "color_source", Name: "bg"})
	require.NoError(t, err)
	defer src.Release()
	filter := mustSource(t, env.ctx, "color_filter", "grade")
	defer filter.Release()
	outsider := mustSource(t, env.ctx, "color_source", "outsider")
	defer outsider.Release()

	p := sourcePtr(t, env.ctx, src)
	require.NoError(t, sc.AddSceneFilter(src, filter))
	assert.Equal(t, 1, env.e.FilterCount(libobs.Source(p)))

	assert.ErrorIs(t, sc.AddSceneFilter(outsider, filter), ErrSourceNotFound)
	assert.ErrorIs(t, sc.AddSceneFilter(src, nil), ErrInvalidOperation)

	require.NoError(t, sc.RemoveSceneFilter(src, filter))
	assert.Zero(t, env.e.FilterCount(libobs.Source(p)))
}

func TestChannels(t *testing.T) {
	env := startTest(t, nil)
	first := mustScene(t, env.ctx, "first")
	second := mustScene(t, env.ctx, "second")
	_, firstSrc := scenePtrs(t, env.ctx, first)
	_, secondSrc := scenePtrs(t, env.ctx, second)

	assert.ErrorIs(t, first.SetToChannel(libobs.MaxChannels), ErrInvalidOperation)
	assert.ErrorIs(t, first.RemoveFromChannel(libobs.MaxChannels), ErrInvalidOperation)
	_, err := env.ctx.ChannelScene(libobs.MaxChannels)
	assert.ErrorIs(t, err, ErrInvalidOperation)

	require.NoError(t, first.SetToChannel(0))
	refs := env.e.Refs(unsafe.Pointer(firstSrc))
	require.NoError(t, first.SetToChannel(0))
	assert.Equal(t, refs, env.e.Refs(unsafe.Pointer(firstSrc)), "assigning the same scene again changes nothing")
	assert.Equal(t, firstSrc, env.e.Channel(0))

	// The last assignment wins and the previous occupant is let go.
	require.NoError(t, second.SetToChannel(0))
	assert.Equal(t, secondSrc, env.e.Channel(0))
	assert.Equal(t, 1, env.logs.FilterMessage("output channel reassigned").Len())

	assert.ErrorIs(t, first.RemoveFromChannel(0), ErrInvalidOperation)

	cur, err := env.ctx.ChannelScene(0)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.True(t, cur.Same(second))
	require.NoError(t, cur.Release())

	// The channel keeps the scene alive after the caller lets go.
	require.NoError(t, second.Release())
	assert.Equal(t, 2, env.e.Live(obstest.KindScene))

	held, err := env.ctx.ChannelScene(0)
	require.NoError(t, err)
	require.NoError(t, held.RemoveFromChannel(0))
	assert.Nil(t, env.e.Channel(0))
	require.NoError(t, held.Release())
	assert.Equal(t, 1, env.e.Live(obstest.KindScene))

	empty, err := env.ctx.ChannelScene(0)
	require.NoError(t, err)
	assert.Nil(t, empty)

	require.NoError(t, first.RemoveFromChannel(5), "clearing an empty channel is a no-op")
}

func TestShutdownClearsChannels(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")
	require.NoError(t, sc.SetToChannel(3))
	require.NoError(t, sc.Release())

	require.NoError(t, env.ctx.Shutdown())
	assert.Nil(t, env.e.Channel(3))
	assert.Zero(t, env.e.Live(obstest.KindScene))
}
