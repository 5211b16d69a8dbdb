//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// DefaultStopTimeout bounds how long Stop waits for the engine to report
// that an output stopped.
const DefaultStopTimeout = 10 * time.Second

// OutputInfo describes an output to create.
type OutputInfo struct {
	// ID is the output type id, e.g. "ffmpeg_muxer" or "replay_buffer".
	ID       string
	Name     string
	Settings *Data
	Hotkeys  *Data
}

// Output is a reference to an engine output: a recording, stream or replay
// buffer fed by the engine's encoders.
type Output struct {
	reference
	ctx  *Context
	h    affinity.Handle[libobs.Output]
	id   string
	name string

	// StopTimeout overrides DefaultStopTimeout for this reference.
	StopTimeout time.Duration
}

// NewOutput creates an output.
func (c *Context) NewOutput(info OutputInfo) (*Output, error) {
	const op = "output.create"
	if err := c.ensureOpen(op); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, newError(KindInvalidOperation, op, "output id is empty")
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
	log := c.log
	return call(c, op, func(tok affinity.Token, e libobs.Engine) (*Output, error) {
		p := e.OutputCreate(info.ID, name, dataPtr(tok, info.Settings), dataPtr(tok, info.Hotkeys))
		if p == nil {
			return nil, nullPointer(op, "obs_output_create("+info.ID+")")
		}
		h := affinity.Wrap(tok, p)
		g := c.newGuard("output", func(tok affinity.Token, e libobs.Engine) error {
			p := h.Ptr(tok)
			if e.OutputActive(p) {
				log.Warn("output released while active, stopping it", zap.String("output", name))
				e.OutputStop(p)
			}
			e.OutputRelease(p)
			return nil
		})
		out := &Output{ctx: c, h: h, id: info.ID, name: name}
		track(out, &out.reference, g)
		return out, nil
	})
}

// ID returns the output type id.
func (o *Output) ID() string { return o.id }

// Name returns the output name.
func (o *Output) Name() string { return o.name }

// Handle returns the native handle.
func (o *Output) Handle() affinity.Handle[libobs.Output] { return o.h }

// Clone returns a new reference to the same output.
func (o *Output) Clone() (*Output, error) {
	if !o.g.acquire() {
		return nil, newError(KindInvalidOperation, "output.clone", "reference already released")
	}
	c := &Output{ctx: o.ctx, h: o.h, id: o.id, name: o.name, StopTimeout: o.StopTimeout}
	track(c, &c.reference, o.g)
	return c, nil
}

func (o *Output) exec(op string, fn func(tok affinity.Token, p libobs.Output, e libobs.Engine) error) error {
	if err := o.alive(op); err != nil {
		return err
	}
	return run(o.ctx, op, func(tok affinity.Token, e libobs.Engine) error {
		return fn(tok, o.h.Ptr(tok), e)
	})
}

func lastError(e libobs.Engine, p libobs.Output) string {
	b := e.OutputGetLastError(p)
	if b == nil || !utf8.Valid(b) {
		return ""
	}
	return string(b)
}

// Start starts the output. It fails with KindOutputAlreadyActive if the
// output is running and with KindOutputStartFailure, carrying the engine's
// last error, if the engine refuses to start it.
func (o *Output) Start() error {
	const op = "output.start"
	return o.exec(op, func(_ affinity.Token, p libobs.Output, e libobs.Engine) error {
		if e.OutputActive(p) {
			return newError(KindOutputAlreadyActive, op, o.name)
		}
		if !e.OutputStart(p) {
			msg := lastError(e, p)
			if msg == "" {
				msg = "engine gave no reason"
			}
			return newError(KindOutputStartFailure, op, msg)
		}
		o.ctx.log.Info("output started", zap.String("output", o.name), zap.String("id", o.id))
		return nil
	})
}

// Stop stops the output and waits for the engine to confirm. It fails with
// KindOutputStopFailure if the output is not active, if the engine reports a
// non-zero stop code, or if no confirmation arrives within the stop timeout.
func (o *Output) Stop() error {
	const op = "output.stop"
	active, err := o.Active()
	if err != nil {
		return err
	}
	if !active {
		return newError(KindOutputStopFailure, op, "output is not active")
	}

	sub, err := o.Signals().Stop()
	if err != nil {
		return err
	}
	defer func() { _ = sub.Close() }()

	err = o.exec(op, func(_ affinity.Token, p libobs.Output, e libobs.Engine) error {
		e.OutputStop(p)
		return nil
	})
	if err != nil {
		return err
	}

	timeout := o.StopTimeout
	if timeout <= 0 {
		timeout = DefaultStopTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev, ok := <-sub.C():
		if !ok {
			return newError(KindOutputStopFailure, op, "subscription closed before the stop signal")
		}
		if ev.Code != 0 {
			return &Error{Kind: KindOutputStopFailure, Op: op, Detail: ev.LastError, Status: int(ev.Code)}
		}
		o.ctx.log.Info("output stopped", zap.String("output", o.name))
		return nil
	case <-timer.C:
		return newError(KindOutputStopFailure, op, "timed out waiting for the stop signal")
	}
}

// Pause pauses or resumes the output. It fails with KindOutputPauseFailure
// if the engine refuses, e.g. because the output is not active or does not
// support pausing.
func (o *Output) Pause(pause bool) error {
	const op = "output.pause"
	return o.exec(op, func(_ affinity.Token, p libobs.Output, e libobs.Engine) error {
		if !e.OutputPause(p, pause) {
			return newError(KindOutputPauseFailure, op, lastError(e, p))
		}
		return nil
	})
}

// Active reports whether the output is running.
func (o *Output) Active() (bool, error) {
	var active bool
	err := o.exec("output.active", func(_ affinity.Token, p libobs.Output, e libobs.Engine) error {
		active = e.OutputActive(p)
		return nil
	})
	return active, err
}

// Update applies settings to the output.
func (o *Output) Update(settings *Data) error {
	const op = "output.update"
	if settings == nil || settings.Released() {
		return newError(KindInvalidOperation, op, "settings are nil or released")
	}
	return o.exec(op, func(tok affinity.Token, p libobs.Output, e libobs.Engine) error {
		e.OutputUpdate(p, settings.h.Ptr(tok))
		return nil
	})
}

func (o *Output) updateSettings(tok affinity.Token, e libobs.Engine, d libobs.Data) {
	e.OutputUpdate(o.h.Ptr(tok), d)
}

// Settings returns the output's settings. A BulkUpdate on them updates the
// output once when applied.
func (o *Output) Settings() (*Data, error) {
	const op = "output.settings"
	if err := o.alive(op); err != nil {
		return nil, err
	}
	owner, err := o.Clone()
	if err != nil {
		return nil, err
	}
	d, err := call(o.ctx, op, func(tok affinity.Token, e libobs.Engine) (*Data, error) {
		p := e.OutputGetSettings(o.h.Ptr(tok))
		if p == nil {
			return nil, nullPointer(op, "obs_output_get_settings")
		}
		return o.ctx.wrapData(tok, p, owner), nil
	})
	if err != nil {
		_ = owner.Release()
	}
	return d, err
}

// SetVideoEncoder makes enc the output's video encoder.
func (o *Output) SetVideoEncoder(enc *Encoder) error {
	const op = "output.set_video_encoder"
	if enc == nil || enc.Released() {
		return newError(KindInvalidOperation, op, "encoder is nil or released")
	}
	if enc.audio {
		return newError(KindInvalidOperation, op, "encoder "+enc.name+" is an audio encoder")
	}
	return o.exec(op, func(tok affinity.Token, p libobs.Output, e libobs.Engine) error {
		e.OutputSetVideoEncoder(p, enc.h.Ptr(tok))
		return nil
	})
}

// SetAudioEncoder makes enc the output's audio encoder for track idx.
func (o *Output) SetAudioEncoder(enc *Encoder, idx int) error {
	const op = "output.set_audio_encoder"
	if enc == nil || enc.Released() {
		return newError(KindInvalidOperation, op, "encoder is nil or released")
	}
	if !enc.audio {
		return newError(KindInvalidOperation, op, "encoder "+enc.name+" is a video encoder")
	}
	if idx < 0 || idx >= libobs.MaxAudioMixes {
		return newError(KindInvalidOperation, op, "audio track out of range")
	}
	return o.exec(op, func(tok affinity.Token, p libobs.Output, e libobs.Engine) error {
		e.OutputSetAudioEncoder(p, enc.h.Ptr(tok), idx)
		return nil
	})
}
