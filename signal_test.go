//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

func TestSubscriptionsFanOut(t *testing.T) {
	env := startTest(t, nil)
	src := mustSource(t, env.ctx, "color_source", "bg")
	defer src.Release()

	first, err := src.Signals().Mute()
	require.NoError(t, err)
	second, err := src.Signals().Mute()
	require.NoError(t, err)
	assert.Equal(t, 2, env.e.Connections())
	assert.Equal(t, "mute", first.Signal())

	require.NoError(t, src.SetMuted(true))
	assert.Equal(t, MuteEvent{Muted: true}, <-first.C())
	assert.Equal(t, MuteEvent{Muted: true}, <-second.C())

	require.NoError(t, first.Close())
	assert.Equal(t, 1, env.e.Connections())
	_, open := <-first.C()
	assert.False(t, open, "Close closes the channel")
	assert.NoError(t, first.Close(), "closing twice is a no-op")

	require.NoError(t, src.SetMuted(false))
	assert.Equal(t, MuteEvent{Muted: false}, <-second.C())
	require.NoError(t, second.Close())
	assert.Zero(t, env.e.Connections())
}

func TestSubscriptionDropsWhenFull(t *testing.T) {
	info := DefaultStartupInfo()
	info.SignalBuffer = 1
	env := startTest(t, info)
	src := mustSource(t, env.ctx, "color_source", "bg")
	defer src.Release()

	sub, err := src.Signals().Volume()
	require.NoError(t, err)
	defer sub.Close()

	for _, v := range []float32{0.25, 0.5, 0.75} {
		require.NoError(t, src.SetVolume(v))
	}
	assert.Equal(t, VolumeEvent{Volume: 0.25}, <-sub.C())
	assert.EqualValues(t, 2, sub.Dropped())
}

func TestSubscriptionKeepsSourceAlive(t *testing.T) {
	env := startTest(t, nil)
	src := mustSource(t, env.ctx, "color_source", "bg")
	p := sourcePtr(t, env.ctx, src)

	sub, err := src.Signals().Rename()
	require.NoError(t, err)
	require.NoError(t, src.Release())
	assert.Equal(t, 1, env.e.Live(obstest.KindSource))

	env.e.EmitSource(libobs.Source(p), "rename", map[string]any{"new_name": "fg", "prev_name": "bg"})
	assert.Equal(t, RenameEvent{Name: "fg", Previous: "bg"}, <-sub.C())

	require.NoError(t, sub.Close())
	assert.Zero(t, env.e.Live(obstest.KindSource))
}

func TestDroppedPayloadIsReleasedWithoutTheAffinityThread(t *testing.T) {
	info := DefaultStartupInfo()
	info.SignalBuffer = 1
	env := startTest(t, info)
	src := mustSource(t, env.ctx, "color_source", "bg")
	defer src.Release()
	filter := mustSource(t, env.ctx, "color_filter", "grade")
	defer filter.Release()
	sp := sourcePtr(t, env.ctx, src)
	fp := sourcePtr(t, env.ctx, filter)

	added, err := src.Signals().FilterAdd()
	require.NoError(t, err)
	defer added.Close()

	// The engine fires signals from its own threads, possibly while the
	// affinity thread waits on it.
	delivered := false
	err = env.ctx.Run(func(affinity.Token, libobs.Engine) error {
		done := make(chan struct{})
		go func() {
			defer close(done)
			for range 2 {
				env.e.EmitSource(libobs.Source(sp), "filter_add", map[string]any{"filter": fp})
			}
		}()
		select {
		case <-done:
			delivered = true
		case <-time.After(2 * time.Second):
		}
		return nil
	})
	require.NoError(t, err)
	require.True(t, delivered, "signal delivery blocked on the affinity thread")
	assert.EqualValues(t, 1, added.Dropped())

	ev := <-added.C()
	require.NotNil(t, ev.Filter)
	require.NoError(t, ev.Filter.Release())

	_, err = env.ctx.Version()
	require.NoError(t, err)
	assert.Equal(t, 1, env.e.Refs(fp), "the dropped event's reference is released")
}

func TestFilterSignals(t *testing.T) {
	env := startTest(t, nil)
	src := mustSource(t, env.ctx, "color_source", "bg")
	defer src.Release()
	filter := mustSource(t, env.ctx, "color_filter", "grade")
	defer filter.Release()

	added, err := src.Signals().FilterAdd()
	require.NoError(t, err)
	defer added.Close()
	removed, err := src.Signals().FilterRemove()
	require.NoError(t, err)
	defer removed.Close()

	require.NoError(t, src.AddFilter(filter))
	ev := <-added.C()
	require.NotNil(t, ev.Filter)
	assert.True(t, ev.Filter.Same(filter))
	assert.Equal(t, "grade", ev.Filter.Name())
	assert.Equal(t, "color_filter", ev.Filter.ID(), "the id is looked up lazily")
	require.NoError(t, ev.Filter.Release())

	require.NoError(t, src.RemoveFilter(filter))
	ev = <-removed.C()
	require.NotNil(t, ev.Filter)
	require.NoError(t, ev.Filter.Release())
}

func TestUpdateSignal(t *testing.T) {
	env := startTest(t, nil)
	src := mustSource(t, env.ctx, "color_source", "bg")
	defer src.Release()

	updates, err := src.Signals().Update()
	require.NoError(t, err)
	defer updates.Close()

	d, err := env.ctx.NewData()
	require.NoError(t, err)
	defer d.Release()
	require.NoError(t, d.SetInt("width", 100))
	require.NoError(t, src.Update(d))
	assert.Len(t, updates.C(), 1)
}

func TestSceneItemSignals(t *testing.T) {
	env := startTest(t, nil)
	sc := mustScene(t, env.ctx, "main")

	adds, err := sc.Signals().ItemAdd()
	require.NoError(t, err)
	defer adds.Close()
	locks, err := sc.Signals().ItemLocked()
	require.NoError(t, err)
	defer locks.Close()
	removes, err := sc.Signals().ItemRemove()
	require.NoError(t, err)
	defer removes.Close()

	src, err := sc.AddSource(SourceInfo{ID: "color_source", Name: "bg"})
	require.NoError(t, err)
	defer src.Release()

	add := <-adds.C()
	require.NotNil(t, add.Source)
	assert.True(t, add.Source.Same(src))
	require.NoError(t, add.Source.Release())

	require.NoError(t, sc.SetSourceLocked(src, true))
	lock := <-locks.C()
	assert.True(t, lock.Value)
	require.NotNil(t, lock.Source)
	assert.Equal(t, "bg", lock.Source.Name())
	require.NoError(t, lock.Source.Release())

	require.NoError(t, sc.RemoveSource(src))
	rm := <-removes.C()
	require.NotNil(t, rm.Source)
	require.NoError(t, rm.Source.Release())
}

func TestOutputSignals(t *testing.T) {
	env := startTest(t, nil)
	out := mustOutput(t, env.ctx, "ffmpeg_muxer", "rec")

	activate, err := out.Signals().Activate()
	require.NoError(t, err)
	defer activate.Close()
	deactivate, err := out.Signals().Deactivate()
	require.NoError(t, err)
	defer deactivate.Close()
	stops, err := out.Signals().Stop()
	require.NoError(t, err)
	defer stops.Close()

	require.NoError(t, out.Start())
	assert.Len(t, activate.C(), 1)
	require.NoError(t, out.Stop())
	assert.Len(t, deactivate.C(), 1)
	assert.Equal(t, StopEvent{}, <-stops.C())
}

func TestShutdownClosesSubscriptions(t *testing.T) {
	env := startTest(t, nil)
	src := mustSource(t, env.ctx, "color_source", "bg")
	sub, err := src.Signals().Show()
	require.NoError(t, err)

	require.NoError(t, env.ctx.Shutdown())
	_, open := <-sub.C()
	assert.False(t, open)
	assert.Zero(t, env.e.Live(obstest.KindSource))
	assert.NoError(t, sub.Close())

	_, err = src.Signals().Hide()
	assert.ErrorIs(t, err, ErrInvalidOperation)
}
