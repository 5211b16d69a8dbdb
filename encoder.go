//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// EncoderInfo describes an encoder to create.
type EncoderInfo struct {
	// ID is the encoder type id, e.g. "obs_x264" or "ffmpeg_aac".
	ID       string
	Name     string
	Settings *Data
	Hotkeys  *Data
	// Mixer selects the audio mix an audio encoder reads from.
	Mixer int
}

// Encoder is a reference to an engine encoder. Video encoders read the
// engine's main video pipeline and audio encoders its main audio pipeline.
type Encoder struct {
	reference
	ctx   *Context
	h     affinity.Handle[libobs.Encoder]
	id    string
	name  string
	audio bool
}

func (c *Context) newEncoder(op string, info EncoderInfo, audio bool) (*Encoder, error) {
	if err := c.ensureOpen(op); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, newError(KindInvalidOperation, op, "encoder id is empty")
	}
	for _, d := range []*Data{info.Settings, info.Hotkeys} {
		if d != nil && d.Released() {
			return nil, newError(KindInvalidOperation, op, "settings reference already released")
		}
	}
	name := info.Name
	if name == "" {
		name = uniqueName(info.ID)
	}
	return call(c, op, func(tok affinity.Token, e libobs.Engine) (*Encoder, error) {
		var p libobs.Encoder
		if audio {
			p = e.AudioEncoderCreate(info.ID, name, dataPtr(tok, info.Settings), info.Mixer, dataPtr(tok, info.Hotkeys))
		} else {
			p = e.VideoEncoderCreate(info.ID, name, dataPtr(tok, info.Settings), dataPtr(tok, info.Hotkeys))
		}
		if p == nil {
			return nil, nullPointer(op, "encoder "+info.ID)
		}
		if audio {
			e.EncoderSetAudio(p)
		} else {
			e.EncoderSetVideo(p)
		}
		h := affinity.Wrap(tok, p)
		g := c.newGuard("encoder", func(tok affinity.Token, e libobs.Engine) error {
			e.EncoderRelease(h.Ptr(tok))
			return nil
		})
		enc := &Encoder{ctx: c, h: h, id: info.ID, name: name, audio: audio}
		track(enc, &enc.reference, g)
		return enc, nil
	})
}

// NewVideoEncoder creates a video encoder bound to the main video pipeline.
func (c *Context) NewVideoEncoder(info EncoderInfo) (*Encoder, error) {
	return c.newEncoder("encoder.create_video", info, false)
}

// NewAudioEncoder creates an audio encoder bound to the main audio pipeline.
func (c *Context) NewAudioEncoder(info EncoderInfo) (*Encoder, error) {
	return c.newEncoder("encoder.create_audio", info, true)
}

// ID returns the encoder type id.
func (enc *Encoder) ID() string { return enc.id }

// Name returns the encoder name.
func (enc *Encoder) Name() string { return enc.name }

// IsAudio reports whether enc encodes audio.
func (enc *Encoder) IsAudio() bool { return enc.audio }

// Handle returns the native handle.
func (enc *Encoder) Handle() affinity.Handle[libobs.Encoder] { return enc.h }

// Clone returns a new reference to the same encoder.
func (enc *Encoder) Clone() (*Encoder, error) {
	if !enc.g.acquire() {
		return nil, newError(KindInvalidOperation, "encoder.clone", "reference already released")
	}
	c := &Encoder{ctx: enc.ctx, h: enc.h, id: enc.id, name: enc.name, audio: enc.audio}
	track(c, &c.reference, enc.g)
	return c, nil
}
