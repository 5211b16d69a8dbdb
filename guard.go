//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"errors"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// releaseFunc gives up the native reference a guard owns. It runs on the
// affinity thread.
type releaseFunc func(tok affinity.Token, e libobs.Engine) error

// guard owns exactly one native reference, shared by every Go reference
// cloned from the same object. The native release runs once, when the last
// Go reference is released, or at Shutdown for references still alive then.
type guard struct {
	ctx     *Context
	kind    string
	seq     uint64
	release releaseFunc

	refs atomic.Int64
	done atomic.Bool
}

// acquire adds a Go reference. It fails once the native reference is gone.
func (g *guard) acquire() bool {
	for {
		n := g.refs.Load()
		if n <= 0 || g.done.Load() {
			return false
		}
		if g.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

type dropMode int

const (
	dropDefault dropMode = iota // synchronous unless NonBlockingDrops is set
	dropAsync
	dropSync
)

// drop removes a Go reference and releases the native object with the last one.
func (g *guard) drop(mode dropMode) error {
	if g.refs.Add(-1) > 0 {
		return nil
	}
	return g.releaseNative(mode)
}

func (g *guard) releaseNative(mode dropMode) error {
	if !g.done.CompareAndSwap(false, true) {
		return nil
	}
	c := g.ctx
	c.forget(g)

	if mode == dropAsync || (mode == dropDefault && c.nonBlockingDrops) {
		f := affinity.Go(c.rt, func(tok affinity.Token) (struct{}, error) {
			err := g.release(tok, c.engine)
			if err != nil {
				c.log.Warn("asynchronous release failed", zap.String("kind", g.kind), zap.Error(err))
			}
			return struct{}{}, err
		})
		// A closed runtime refuses the work before it is queued.
		select {
		case <-f.Done():
			if _, err := f.Result(); errors.Is(err, affinity.ErrThreadUnavailable) {
				c.log.Warn("asynchronous release failed", zap.String("kind", g.kind), zap.Error(err))
			}
		default:
		}
		return nil
	}

	err := run(c, "release "+g.kind, func(tok affinity.Token, e libobs.Engine) error {
		return g.release(tok, e)
	})
	if err != nil {
		c.log.Error("release failed", zap.String("kind", g.kind), zap.Error(err))
	}
	return err
}

// reference is one Go reference to a guarded native object. Each exported
// object type embeds it; Clone creates a new reference on the same guard.
type reference struct {
	g        *guard
	released atomic.Bool
	cleanup  runtime.Cleanup
}

// track arms the leak safety net for obj, whose embedded reference is ref.
func track[T any](obj *T, ref *reference, g *guard) {
	ref.g = g
	ref.cleanup = runtime.AddCleanup(obj, releaseLeaked, g)
}

// releaseLeaked runs on the cleanup goroutine for references that were never
// released. It must not block, so the native release is always queued.
func releaseLeaked(g *guard) {
	if g.done.Load() {
		return
	}
	g.ctx.log.Warn("native reference leaked, releasing it in the background", zap.String("kind", g.kind))
	_ = g.drop(dropAsync)
}

// Release drops this reference. The native object is released with the
// last reference sharing it. Releasing twice is a no-op.
func (r *reference) Release() error {
	if r.g == nil || !r.released.CompareAndSwap(false, true) {
		return nil
	}
	r.cleanup.Stop()
	return r.g.drop(dropDefault)
}

// releaseAsync drops this reference like Release but only queues the native
// release.
func (r *reference) releaseAsync() {
	if r.g == nil || !r.released.CompareAndSwap(false, true) {
		return
	}
	r.cleanup.Stop()
	_ = r.g.drop(dropAsync)
}

// Released reports whether Release has been called on this reference or
// the native object is already gone.
func (r *reference) Released() bool {
	return r.g == nil || r.released.Load() || r.g.done.Load()
}

func (r *reference) alive(op string) error {
	if r.Released() {
		return newError(KindInvalidOperation, op, "reference already released")
	}
	return nil
}

// guards tracks live guards so Shutdown can release what callers still hold.
type guards struct {
	mu   sync.Mutex
	seq  uint64
	live map[*guard]struct{}
}

func (c *Context) newGuard(kind string, release releaseFunc) *guard {
	c.guards.mu.Lock()
	defer c.guards.mu.Unlock()
	c.guards.seq++
	g := &guard{ctx: c, kind: kind, seq: c.guards.seq, release: release}
	g.refs.Store(1)
	if c.guards.live == nil {
		c.guards.live = make(map[*guard]struct{})
	}
	c.guards.live[g] = struct{}{}
	return g
}

func (c *Context) forget(g *guard) {
	c.guards.mu.Lock()
	delete(c.guards.live, g)
	c.guards.mu.Unlock()
}

// liveGuards returns the live guards, newest first.
func (c *Context) liveGuards() []*guard {
	c.guards.mu.Lock()
	defer c.guards.mu.Unlock()
	out := make([]*guard, 0, len(c.guards.live))
	for g := range c.guards.live {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq > out[j].seq })
	return out
}

// LiveReferences returns the number of native objects still held by Go
// references.
func (c *Context) LiveReferences() int {
	c.guards.mu.Lock()
	defer c.guards.mu.Unlock()
	return len(c.guards.live)
}
