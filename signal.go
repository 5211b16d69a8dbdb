//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"sync"
	"sync/atomic"
	"unicode/utf8"
	"unsafe"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// decoder turns signal calldata into a payload. It runs on the thread that
// emitted the signal and may only use the thread-safe engine calls:
// calldata getters, SourceGetRef, SceneItemGetSource and SourceGetName.
type decoder[T any] func(c *Context, e libobs.Engine, cd libobs.Calldata) (T, bool)

// Subscription delivers the payloads of one native signal on one object.
// Every subscription has its own native connection, so two subscriptions to
// the same signal each receive every event.
//
// Events are buffered; when the buffer is full new events are dropped and
// counted rather than blocking the engine thread that emitted them.
type Subscription[T any] struct {
	ctx     *Context
	signal  string
	ch      chan T
	dropped atomic.Uint64

	sh     affinity.Handle[libobs.SignalHandler]
	id     uintptr
	owner  interface{ Release() error }
	decode decoder[T]

	mu     sync.RWMutex // guards closed against sends on ch
	closed bool
	once   sync.Once
	err    error
}

// C returns the event channel. It is closed by Close.
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Signal returns the native signal name.
func (s *Subscription[T]) Signal() string {
	return s.signal
}

// Dropped returns the number of events lost to a full buffer.
func (s *Subscription[T]) Dropped() uint64 {
	return s.dropped.Load()
}

// ReceiveSignal implements libobs.SignalReceiver.
func (s *Subscription[T]) ReceiveSignal(cd libobs.Calldata) {
	v, ok := s.decode(s.ctx, s.ctx.engine, cd)
	if !ok {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		discard(v)
		return
	}
	select {
	case s.ch <- v:
	default:
		s.dropped.Add(1)
		discard(v)
	}
}

// Close disconnects the signal and closes the channel. Events still
// buffered remain readable; payload references in them must still be
// released by the reader.
func (s *Subscription[T]) Close() error {
	s.once.Do(func() {
		s.ctx.forgetSubscription(s)
		s.err = run(s.ctx, "signal.disconnect", func(tok affinity.Token, e libobs.Engine) error {
			e.SignalHandlerDisconnect(s.sh.Ptr(tok), s.signal, s.id)
			return nil
		})
		libobs.UnregisterReceiver(s.id)

		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()

		if s.owner != nil {
			if err := s.owner.Release(); err != nil && s.err == nil {
				s.err = err
			}
		}
		if n := s.dropped.Load(); n > 0 {
			s.ctx.log.Debug("subscription closed with dropped events", zap.String("signal", s.signal), zap.Uint64("dropped", n))
		}
	})
	return s.err
}

// releaser is implemented by payloads holding engine references.
type releaser interface {
	releasePayload()
}

func discard(v any) {
	if r, ok := v.(releaser); ok {
		r.releasePayload()
	}
}

// subscribe connects decode to signal on the handler returned by handler.
// owner is a reference that keeps the emitting object alive while connected;
// the subscription releases it on Close.
func subscribe[T any](c *Context, signal string, owner interface{ Release() error },
	handler func(tok affinity.Token, e libobs.Engine) libobs.SignalHandler, decode decoder[T]) (*Subscription[T], error) {
	op := "signal.subscribe " + signal
	if err := c.ensureOpen(op); err != nil {
		_ = owner.Release()
		return nil, err
	}

	s := &Subscription[T]{
		ctx:    c,
		signal: signal,
		ch:     make(chan T, c.info.signalBuffer()),
		owner:  owner,
		decode: decode,
	}
	err := run(c, op, func(tok affinity.Token, e libobs.Engine) error {
		sh := handler(tok, e)
		if sh == nil {
			return nullPointer(op, "signal handler")
		}
		s.sh = affinity.Wrap(tok, sh)
		s.id = libobs.RegisterReceiver(s)
		e.SignalHandlerConnect(sh, signal, s.id)
		return nil
	})
	if err != nil {
		if s.id != 0 {
			libobs.UnregisterReceiver(s.id)
		}
		_ = owner.Release()
		return nil, err
	}
	c.rememberSubscription(s)
	return s, nil
}

type closer interface {
	Close() error
}

type subscriptions struct {
	mu   sync.Mutex
	live map[closer]struct{}
}

func (c *Context) rememberSubscription(s closer) {
	c.subs.mu.Lock()
	defer c.subs.mu.Unlock()
	if c.subs.live == nil {
		c.subs.live = make(map[closer]struct{})
	}
	c.subs.live[s] = struct{}{}
}

func (c *Context) forgetSubscription(s closer) {
	c.subs.mu.Lock()
	delete(c.subs.live, s)
	c.subs.mu.Unlock()
}

// closeSubscriptions disconnects every open subscription.
func (c *Context) closeSubscriptions() error {
	c.subs.mu.Lock()
	live := make([]closer, 0, len(c.subs.live))
	for s := range c.subs.live {
		live = append(live, s)
	}
	c.subs.mu.Unlock()

	var errs error
	for _, s := range live {
		errs = multierr.Append(errs, s.Close())
	}
	return errs
}

// Decoders

func decodeNothing(*Context, libobs.Engine, libobs.Calldata) (struct{}, bool) {
	return struct{}{}, true
}

func calldataString(e libobs.Engine, cd libobs.Calldata, name string) string {
	b, ok := e.CalldataGetString(cd, name)
	if !ok || !utf8.Valid(b) {
		return ""
	}
	return string(b)
}

func calldataPtr(e libobs.Engine, cd libobs.Calldata, name string) unsafe.Pointer {
	p, ok := e.CalldataGetPtr(cd, name)
	if !ok || p == 0 {
		return nil
	}
	return *(*unsafe.Pointer)(unsafe.Pointer(&p))
}

// adoptSource takes a new reference to a source seen in a signal. It returns
// nil when the source is already being destroyed.
func adoptSource(c *Context, e libobs.Engine, p libobs.Source) *Source {
	if p == nil {
		return nil
	}
	ref := e.SourceGetRef(p)
	if ref == nil {
		return nil
	}
	return c.newSource(affinity.Adopt(ref), "", calldataName(e, ref))
}

func calldataName(e libobs.Engine, s libobs.Source) string {
	b := e.SourceGetName(s)
	if !utf8.Valid(b) {
		return ""
	}
	return string(b)
}
