//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
	"github.com/obinnaokechukwu/obsgo/libobs/obstest"
)

func displayPtr(t *testing.T, ctx *Context, d *Display) libobs.Display {
	t.Helper()
	var p libobs.Display
	require.NoError(t, ctx.Run(func(tok affinity.Token, _ libobs.Engine) error {
		p = d.Handle().Ptr(tok)
		return nil
	}))
	return p
}

func TestDisplay(t *testing.T) {
	env := startTest(t, nil)

	_, err := env.ctx.NewDisplay(DisplayCreationData{Width: 0, Height: 480})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	d, err := env.ctx.NewDisplay(DisplayCreationData{Width: 640, Height: 480, Background: 0xFF202020})
	require.NoError(t, err)
	p := displayPtr(t, env.ctx, d)

	w, h, enabled, ok := env.e.DisplayState(p)
	require.True(t, ok)
	assert.Equal(t, [2]uint32{640, 480}, [2]uint32{w, h})
	assert.True(t, enabled)

	require.NoError(t, d.Resize(1280, 720))
	require.NoError(t, d.SetEnabled(false))
	require.NoError(t, d.SetBackgroundColor(0xFF000000))
	assert.ErrorIs(t, d.Resize(0, 720), ErrInvalidOperation)

	w, h, enabled, ok = env.e.DisplayState(p)
	require.True(t, ok)
	assert.Equal(t, [2]uint32{1280, 720}, [2]uint32{w, h})
	assert.False(t, enabled)
}

func TestDisplayDestroyedOnce(t *testing.T) {
	env := startTest(t, nil)
	d, err := env.ctx.NewDisplay(DisplayCreationData{Width: 320, Height: 240})
	require.NoError(t, err)
	clone, err := d.Clone()
	require.NoError(t, err)

	require.NoError(t, d.Release())
	assert.Equal(t, 1, env.e.Live(obstest.KindDisplay))
	require.NoError(t, clone.Resize(640, 480), "the clone still works")

	require.NoError(t, clone.Release())
	assert.Zero(t, env.e.Live(obstest.KindDisplay))
	assert.Equal(t, 1, env.e.Calls("DisplayDestroy"))
	assert.ErrorIs(t, clone.SetEnabled(true), ErrInvalidOperation)
}
