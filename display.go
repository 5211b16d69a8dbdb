//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// DisplayCreationData describes a native surface the engine renders a
// preview into.
type DisplayCreationData struct {
	Window      libobs.Window
	Width       uint32
	Height      uint32
	Backbuffers uint32
	Format      libobs.ColorFormat
	ZSFormat    libobs.ZStencilFormat
	Adapter     uint32
	// Background is the clear color as 0xAARRGGBB.
	Background uint32
}

func (d DisplayCreationData) native() libobs.DisplayInfo {
	format := d.Format
	if format == libobs.ColorFormatUnknown {
		format = libobs.ColorFormatBGRA
	}
	backbuffers := d.Backbuffers
	if backbuffers == 0 {
		backbuffers = 1
	}
	return libobs.DisplayInfo{
		Window:      d.Window,
		Width:       d.Width,
		Height:      d.Height,
		Backbuffers: backbuffers,
		Format:      format,
		ZSFormat:    d.ZSFormat,
		Adapter:     d.Adapter,
	}
}

// Display is a reference to an engine display. The native display has no
// reference count of its own; it is destroyed once, with the last reference.
type Display struct {
	reference
	ctx *Context
	h   affinity.Handle[libobs.Display]
}

// NewDisplay creates a display rendering into the window described by data.
func (c *Context) NewDisplay(data DisplayCreationData) (*Display, error) {
	const op = "display.create"
	if err := c.ensureOpen(op); err != nil {
		return nil, err
	}
	if data.Width == 0 || data.Height == 0 {
		return nil, newError(KindInvalidOperation, op, "display size is zero")
	}
	return call(c, op, func(tok affinity.Token, e libobs.Engine) (*Display, error) {
		info := data.native()
		p := e.DisplayCreate(&info, data.Background)
		if p == nil {
			return nil, nullPointer(op, "obs_display_create")
		}
		h := affinity.Wrap(tok, p)
		g := c.newGuard("display", func(tok affinity.Token, e libobs.Engine) error {
			e.DisplayDestroy(h.Ptr(tok))
			return nil
		})
		d := &Display{ctx: c, h: h}
		track(d, &d.reference, g)
		return d, nil
	})
}

// Clone returns a new reference to the same display.
func (d *Display) Clone() (*Display, error) {
	if !d.g.acquire() {
		return nil, newError(KindInvalidOperation, "display.clone", "reference already released")
	}
	c := &Display{ctx: d.ctx, h: d.h}
	track(c, &c.reference, d.g)
	return c, nil
}

// Handle returns the native handle.
func (d *Display) Handle() affinity.Handle[libobs.Display] {
	return d.h
}

func (d *Display) exec(op string, fn func(p libobs.Display, e libobs.Engine)) error {
	if err := d.alive(op); err != nil {
		return err
	}
	return run(d.ctx, op, func(tok affinity.Token, e libobs.Engine) error {
		fn(d.h.Ptr(tok), e)
		return nil
	})
}

// SetEnabled turns rendering into the display on or off.
func (d *Display) SetEnabled(enabled bool) error {
	return d.exec("display.set_enabled", func(p libobs.Display, e libobs.Engine) {
		e.DisplaySetEnabled(p, enabled)
	})
}

// Resize changes the size of the display's swap chain.
func (d *Display) Resize(width, height uint32) error {
	const op = "display.resize"
	if width == 0 || height == 0 {
		return newError(KindInvalidOperation, op, "display size is zero")
	}
	return d.exec(op, func(p libobs.Display, e libobs.Engine) {
		e.DisplayResize(p, width, height)
	})
}

// SetBackgroundColor sets the clear color as 0xAARRGGBB.
func (d *Display) SetBackgroundColor(color uint32) error {
	return d.exec("display.set_background_color", func(p libobs.Display, e libobs.Engine) {
		e.DisplaySetBackgroundColor(p, color)
	})
}
