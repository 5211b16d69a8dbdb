//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// SourceInfo describes a source to create.
type SourceInfo struct {
	// ID is the source type id registered by a plugin, e.g. "color_source".
	ID string
	// Name must be unique among sources. Empty generates one from ID.
	Name string
	// Settings and Hotkeys are optional. The source copies what it needs;
	// the caller keeps its references.
	Settings *Data
	Hotkeys  *Data
}

// SourceBuilder produces the description of a source. The sources package
// implements it for the common capture types.
type SourceBuilder interface {
	ID() string
	Name() string
	ToSettings(c *Context) (*Data, error)
}

// Source is a reference to an engine source.
type Source struct {
	reference
	ctx  *Context
	h    affinity.Handle[libobs.Source]
	name string
	meta *sourceMeta
}

// sourceMeta is shared by every reference to one source.
type sourceMeta struct {
	once sync.Once
	id   string
}

func uniqueName(id string) string {
	return id + "-" + uuid.NewString()
}

// newSource wraps a native source reference the caller already owns.
func (c *Context) newSource(h affinity.Handle[libobs.Source], id, name string) *Source {
	g := c.newGuard("source", func(tok affinity.Token, e libobs.Engine) error {
		e.SourceRelease(h.Ptr(tok))
		return nil
	})
	meta := &sourceMeta{id: id}
	if id != "" {
		meta.once.Do(func() {})
	}
	s := &Source{ctx: c, h: h, name: name, meta: meta}
	track(s, &s.reference, g)
	return s
}

func dataPtr(tok affinity.Token, d *Data) libobs.Data {
	if d == nil {
		return nil
	}
	return d.h.Ptr(tok)
}

// createSource runs on the affinity thread.
func (c *Context) createSource(tok affinity.Token, e libobs.Engine, op string, info SourceInfo) (*Source, error) {
	if info.ID == "" {
		return nil, newError(KindInvalidOperation, op, "source id is empty")
	}
	name := info.Name
	if name == "" {
		name = uniqueName(info.ID)
	}
	p := e.SourceCreate(info.ID, name, dataPtr(tok, info.Settings), dataPtr(tok, info.Hotkeys))
	if p == nil {
		return nil, nullPointer(op, "obs_source_create("+info.ID+")")
	}
	return c.newSource(affinity.Wrap(tok, p), info.ID, name), nil
}

// NewSource creates a source that is not yet part of any scene.
func (c *Context) NewSource(info SourceInfo) (*Source, error) {
	const op = "source.create"
	if err := c.ensureOpen(op); err != nil {
		return nil, err
	}
	for _, d := range []*Data{info.Settings, info.Hotkeys} {
		if d != nil && d.Released() {
			return nil, newError(KindInvalidOperation, op, "settings reference already released")
		}
	}
	return call(c, op, func(tok affinity.Token, e libobs.Engine) (*Source, error) {
		return c.createSource(tok, e, op, info)
	})
}

// SourceInfoFrom builds b's settings and returns the matching SourceInfo.
// The caller releases info.Settings once the source is created.
func (c *Context) SourceInfoFrom(b SourceBuilder) (SourceInfo, error) {
	settings, err := b.ToSettings(c)
	if err != nil {
		return SourceInfo{}, err
	}
	return SourceInfo{ID: b.ID(), Name: b.Name(), Settings: settings}, nil
}

// BuildSource creates the source b describes.
func (c *Context) BuildSource(b SourceBuilder) (*Source, error) {
	info, err := c.SourceInfoFrom(b)
	if err != nil {
		return nil, err
	}
	defer releaseData(info.Settings)
	return c.NewSource(info)
}

func releaseData(d *Data) {
	if d != nil {
		_ = d.Release()
	}
}

// Clone returns a new reference to the same source.
func (s *Source) Clone() (*Source, error) {
	if !s.g.acquire() {
		return nil, newError(KindInvalidOperation, "source.clone", "reference already released")
	}
	c := &Source{ctx: s.ctx, h: s.h, name: s.name, meta: s.meta}
	track(c, &c.reference, s.g)
	return c, nil
}

// Handle returns the native handle.
func (s *Source) Handle() affinity.Handle[libobs.Source] {
	return s.h
}

// Same reports whether s and other refer to the same engine source.
func (s *Source) Same(other *Source) bool {
	return other != nil && s.h.Same(other.h)
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// ID returns the source type id. Sources received through signals look it
// up on first use and return "" if that fails.
func (s *Source) ID() string {
	m := s.meta
	m.once.Do(func() {
		id, err := call(s.ctx, "source.id", func(tok affinity.Token, e libobs.Engine) (string, error) {
			b := e.SourceGetID(s.h.Ptr(tok))
			if !utf8.Valid(b) {
				return "", nil
			}
			return string(b), nil
		})
		if err == nil {
			m.id = id
		}
	})
	return m.id
}

func (s *Source) exec(op string, fn func(tok affinity.Token, p libobs.Source, e libobs.Engine) error) error {
	if err := s.alive(op); err != nil {
		return err
	}
	return run(s.ctx, op, func(tok affinity.Token, e libobs.Engine) error {
		return fn(tok, s.h.Ptr(tok), e)
	})
}

// Update applies settings to the source.
func (s *Source) Update(settings *Data) error {
	const op = "source.update"
	if settings == nil || settings.Released() {
		return newError(KindInvalidOperation, op, "settings are nil or released")
	}
	return s.exec(op, func(tok affinity.Token, p libobs.Source, e libobs.Engine) error {
		e.SourceUpdate(p, settings.h.Ptr(tok))
		return nil
	})
}

func (s *Source) updateSettings(tok affinity.Token, e libobs.Engine, d libobs.Data) {
	e.SourceUpdate(s.h.Ptr(tok), d)
}

// Settings returns the source's settings. A BulkUpdate on them updates the
// source once when applied.
func (s *Source) Settings() (*Data, error) {
	const op = "source.settings"
	if err := s.alive(op); err != nil {
		return nil, err
	}
	owner, err := s.Clone()
	if err != nil {
		return nil, err
	}
	d, err := call(s.ctx, op, func(tok affinity.Token, e libobs.Engine) (*Data, error) {
		p := e.SourceGetSettings(s.h.Ptr(tok))
		if p == nil {
			return nil, nullPointer(op, "obs_source_get_settings")
		}
		return s.ctx.wrapData(tok, p, owner), nil
	})
	if err != nil {
		_ = owner.Release()
	}
	return d, err
}

// AddFilter attaches filter to the source.
func (s *Source) AddFilter(filter *Source) error {
	const op = "source.filter_add"
	if filter == nil || filter.Released() {
		return newError(KindInvalidOperation, op, "filter is nil or released")
	}
	return s.exec(op, func(tok affinity.Token, p libobs.Source, e libobs.Engine) error {
		e.SourceFilterAdd(p, filter.h.Ptr(tok))
		return nil
	})
}

// RemoveFilter detaches filter from the source.
func (s *Source) RemoveFilter(filter *Source) error {
	const op = "source.filter_remove"
	if filter == nil || filter.Released() {
		return newError(KindInvalidOperation, op, "filter is nil or released")
	}
	return s.exec(op, func(tok affinity.Token, p libobs.Source, e libobs.Engine) error {
		e.SourceFilterRemove(p, filter.h.Ptr(tok))
		return nil
	})
}

// SetMuted mutes or unmutes the source's audio.
func (s *Source) SetMuted(muted bool) error {
	return s.exec("source.set_muted", func(_ affinity.Token, p libobs.Source, e libobs.Engine) error {
		e.SourceSetMuted(p, muted)
		return nil
	})
}

// Muted reports whether the source's audio is muted.
func (s *Source) Muted() (bool, error) {
	var muted bool
	err := s.exec("source.muted", func(_ affinity.Token, p libobs.Source, e libobs.Engine) error {
		muted = e.SourceMuted(p)
		return nil
	})
	return muted, err
}

// SetVolume sets the source's linear volume multiplier.
func (s *Source) SetVolume(volume float32) error {
	return s.exec("source.set_volume", func(_ affinity.Token, p libobs.Source, e libobs.Engine) error {
		e.SourceSetVolume(p, volume)
		return nil
	})
}

// Volume returns the source's linear volume multiplier.
func (s *Source) Volume() (float32, error) {
	var v float32
	err := s.exec("source.volume", func(_ affinity.Token, p libobs.Source, e libobs.Engine) error {
		v = e.SourceGetVolume(p)
		return nil
	})
	return v, err
}

// releasePayload drops a reference held by an undelivered event. It runs
// on engine threads, so the native release is queued, never waited for.
func (s *Source) releasePayload() {
	if s != nil {
		s.releaseAsync()
	}
}
