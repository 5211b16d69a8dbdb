//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"sync"

	"go.uber.org/multierr"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// Scene is a reference to an engine scene. A scene owns its members: once a
// source is added, the scene keeps it alive until RemoveSource, whatever
// happens to the caller's references.
type Scene struct {
	reference
	ctx   *Context
	h     affinity.Handle[libobs.Scene]
	src   affinity.Handle[libobs.Source] // borrowed from the scene
	name  string
	state *sceneState
}

// sceneState is shared by every reference to one scene. An entry is in items
// exactly while the source keyed the same way is in sources.
type sceneState struct {
	mu      sync.RWMutex
	sources map[any]*Source
	items   map[any]affinity.Handle[libobs.SceneItem]
}

// NewScene creates an empty scene.
func (c *Context) NewScene(name string) (*Scene, error) {
	const op = "scene.create"
	if err := c.ensureOpen(op); err != nil {
		return nil, err
	}
	if name == "" {
		name = uniqueName("scene")
	}
	return call(c, op, func(tok affinity.Token, e libobs.Engine) (*Scene, error) {
		p := e.SceneCreate(name)
		if p == nil {
			return nil, nullPointer(op, "obs_scene_create")
		}
		src := e.SceneGetSource(p)
		if src == nil {
			e.SceneRelease(p)
			return nil, nullPointer(op, "obs_scene_get_source")
		}
		h := affinity.Wrap(tok, p)
		state := &sceneState{
			sources: make(map[any]*Source),
			items:   make(map[any]affinity.Handle[libobs.SceneItem]),
		}
		g := c.newGuard("scene", func(tok affinity.Token, e libobs.Engine) error {
			var errs error
			for _, member := range state.clear(tok, e) {
				errs = multierr.Append(errs, member.Release())
			}
			e.SceneRelease(h.Ptr(tok))
			return errs
		})
		sc := &Scene{ctx: c, h: h, src: affinity.Wrap(tok, src), name: name, state: state}
		track(sc, &sc.reference, g)
		return sc, nil
	})
}

// clear gives up the scene's item references and returns its members for
// the caller to release.
func (st *sceneState) clear(tok affinity.Token, e libobs.Engine) []*Source {
	st.mu.Lock()
	defer st.mu.Unlock()
	for k, it := range st.items {
		e.SceneItemRelease(it.Ptr(tok))
		delete(st.items, k)
	}
	members := make([]*Source, 0, len(st.sources))
	for k, s := range st.sources {
		members = append(members, s)
		delete(st.sources, k)
	}
	return members
}

// Name returns the scene name.
func (sc *Scene) Name() string {
	return sc.name
}

// Handle returns the native handle.
func (sc *Scene) Handle() affinity.Handle[libobs.Scene] {
	return sc.h
}

// Clone returns a new reference to the same scene.
func (sc *Scene) Clone() (*Scene, error) {
	if !sc.g.acquire() {
		return nil, newError(KindInvalidOperation, "scene.clone", "reference already released")
	}
	c := &Scene{ctx: sc.ctx, h: sc.h, src: sc.src, name: sc.name, state: sc.state}
	track(c, &c.reference, sc.g)
	return c, nil
}

// Same reports whether sc and other refer to the same engine scene.
func (sc *Scene) Same(other *Scene) bool {
	return other != nil && sc.h.Same(other.h)
}

// attach adds member to the scene on the affinity thread. The scene takes
// ownership of member, also on failure.
func (sc *Scene) attach(tok affinity.Token, e libobs.Engine, op string, member *Source) error {
	key := member.h.Key()

	sc.state.mu.Lock()
	if _, ok := sc.state.items[key]; ok {
		sc.state.mu.Unlock()
		_ = member.Release()
		return newError(KindInvalidOperation, op, "source "+member.name+" is already in scene "+sc.name)
	}
	sc.state.mu.Unlock()

	it := e.SceneAdd(sc.h.Ptr(tok), member.h.Ptr(tok))
	if it == nil {
		_ = member.Release()
		return nullPointer(op, "obs_scene_add")
	}
	e.SceneItemAddRef(it)

	sc.state.mu.Lock()
	sc.state.sources[key] = member
	sc.state.items[key] = affinity.Wrap(tok, it)
	sc.state.mu.Unlock()
	return nil
}

// AddSource creates a source and adds it to the scene. The returned
// reference belongs to the caller; the scene keeps its own.
func (sc *Scene) AddSource(info SourceInfo) (*Source, error) {
	const op = "scene.add_source"
	if err := sc.alive(op); err != nil {
		return nil, err
	}
	return call(sc.ctx, op, func(tok affinity.Token, e libobs.Engine) (*Source, error) {
		src, err := sc.ctx.createSource(tok, e, op, info)
		if err != nil {
			return nil, err
		}
		member, err := src.Clone()
		if err == nil {
			err = sc.attach(tok, e, op, member)
		}
		if err != nil {
			_ = src.Release()
			return nil, err
		}
		return src, nil
	})
}

// AddExistingSource adds src to the scene. Adding a source twice fails with
// KindInvalidOperation.
func (sc *Scene) AddExistingSource(src *Source) error {
	const op = "scene.add_existing_source"
	if err := sc.alive(op); err != nil {
		return err
	}
	if src == nil {
		return newError(KindInvalidOperation, op, "source is nil")
	}
	member, err := src.Clone()
	if err != nil {
		return err
	}
	return run(sc.ctx, op, func(tok affinity.Token, e libobs.Engine) error {
		return sc.attach(tok, e, op, member)
	})
}

// RemoveSource removes src from the scene and drops the scene's reference.
func (sc *Scene) RemoveSource(src *Source) error {
	const op = "scene.remove_source"
	if err := sc.alive(op); err != nil {
		return err
	}
	if src == nil {
		return newError(KindInvalidOperation, op, "source is nil")
	}
	key := src.h.Key()
	var member *Source
	err := run(sc.ctx, op, func(tok affinity.Token, e libobs.Engine) error {
		sc.state.mu.Lock()
		it, ok := sc.state.items[key]
		if ok {
			member = sc.state.sources[key]
			delete(sc.state.items, key)
			delete(sc.state.sources, key)
		}
		sc.state.mu.Unlock()
		if !ok {
			return newError(KindSourceNotFound, op, "source "+src.name+" is not in scene "+sc.name)
		}
		p := it.Ptr(tok)
		e.SceneItemRemove(p)
		e.SceneItemRelease(p)
		return nil
	})
	if member != nil {
		err = multierr.Append(err, member.Release())
	}
	return err
}

// item returns the scene's item for src.
func (sc *Scene) item(src *Source) (affinity.Handle[libobs.SceneItem], bool) {
	sc.state.mu.RLock()
	defer sc.state.mu.RUnlock()
	it, ok := sc.state.items[src.h.Key()]
	return it, ok
}

// HasSceneItem reports whether src is currently in the scene.
func (sc *Scene) HasSceneItem(src *Source) bool {
	if src == nil {
		return false
	}
	_, ok := sc.item(src)
	return ok
}

// SourceByName returns a new reference to the member named name.
func (sc *Scene) SourceByName(name string) (*Source, error) {
	const op = "scene.source_by_name"
	if err := sc.alive(op); err != nil {
		return nil, err
	}
	sc.state.mu.RLock()
	var found *Source
	for _, s := range sc.state.sources {
		if s.name == name {
			found = s
			break
		}
	}
	sc.state.mu.RUnlock()
	if found == nil {
		return nil, newError(KindSourceNotFound, op, name)
	}
	return found.Clone()
}

// Sources returns new references to every member. The caller releases them.
func (sc *Scene) Sources() ([]*Source, error) {
	const op = "scene.sources"
	if err := sc.alive(op); err != nil {
		return nil, err
	}
	sc.state.mu.RLock()
	defer sc.state.mu.RUnlock()
	out := make([]*Source, 0, len(sc.state.sources))
	for _, s := range sc.state.sources {
		c, err := s.Clone()
		if err != nil {
			for _, r := range out {
				_ = r.Release()
			}
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// memberCount and itemCount expose the two halves of the membership
// bookkeeping.
func (sc *Scene) memberCount() int {
	sc.state.mu.RLock()
	defer sc.state.mu.RUnlock()
	return len(sc.state.sources)
}

func (sc *Scene) itemCount() int {
	sc.state.mu.RLock()
	defer sc.state.mu.RUnlock()
	return len(sc.state.items)
}

func (sc *Scene) mustContain(op string, src *Source) error {
	if src == nil {
		return newError(KindInvalidOperation, op, "source is nil")
	}
	if !sc.HasSceneItem(src) {
		return newError(KindSourceNotFound, op, "source "+src.name+" is not in scene "+sc.name)
	}
	return nil
}

// AddSceneFilter attaches filter to src, which must be in the scene.
func (sc *Scene) AddSceneFilter(src, filter *Source) error {
	const op = "scene.add_filter"
	if err := sc.alive(op); err != nil {
		return err
	}
	if err := sc.mustContain(op, src); err != nil {
		return err
	}
	return src.AddFilter(filter)
}

// RemoveSceneFilter detaches filter from src, which must be in the scene.
func (sc *Scene) RemoveSceneFilter(src, filter *Source) error {
	const op = "scene.remove_filter"
	if err := sc.alive(op); err != nil {
		return err
	}
	if err := sc.mustContain(op, src); err != nil {
		return err
	}
	return src.RemoveFilter(filter)
}

// SetToChannel makes the scene the source of output channel n. The channel
// keeps its own reference to the scene. A scene already on another scene's
// channel replaces it.
func (sc *Scene) SetToChannel(n uint32) error {
	const op = "scene.set_to_channel"
	if err := sc.alive(op); err != nil {
		return err
	}
	if n >= libobs.MaxChannels {
		return newError(KindInvalidOperation, op, "channel out of range")
	}
	return sc.ctx.setChannel(op, n, sc)
}

// RemoveFromChannel clears channel n if the scene is its source.
func (sc *Scene) RemoveFromChannel(n uint32) error {
	const op = "scene.remove_from_channel"
	if err := sc.alive(op); err != nil {
		return err
	}
	if n >= libobs.MaxChannels {
		return newError(KindInvalidOperation, op, "channel out of range")
	}
	return sc.ctx.clearChannel(op, n, sc)
}
