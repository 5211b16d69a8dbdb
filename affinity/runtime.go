package affinity

import (
	"context"
	"errors"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

const defaultQueueSize = 64

// Option configures a Runtime.
type Option func(*options)

type options struct {
	queueSize int
	logger    *zap.Logger
	name      string
}

// WithQueueSize sets how many units of work may wait before submitters block.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithLogger sets the logger used for recovered panics and lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithName names the runtime in log entries.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

type task struct {
	run func(Token)
}

// Runtime executes work on one goroutine locked to one OS thread.
// It is safe for concurrent use.
type Runtime struct {
	name   string
	logger *zap.Logger
	queue  chan task

	mu     sync.RWMutex // guards closed against sends on queue
	closed bool

	stopped  chan struct{}
	tid      atomic.Int64
	hasTID   atomic.Bool
	executed atomic.Uint64
}

// New starts a runtime. It returns once the worker is pinned to its thread.
func New(opts ...Option) *Runtime {
	o := options{queueSize: defaultQueueSize, name: "affinity"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	r := &Runtime{
		name:    o.name,
		logger:  o.logger,
		queue:   make(chan task, o.queueSize),
		stopped: make(chan struct{}),
	}

	ready := make(chan struct{})
	go r.loop(ready)
	<-ready

	r.logger.Debug("affinity runtime started",
		zap.String("runtime", r.name),
		zap.Int64("thread", r.tid.Load()))
	return r
}

func (r *Runtime) loop(ready chan<- struct{}) {
	// The thread stays locked when the goroutine returns, so it exits with it
	// and takes any native thread-local state along.
	runtime.LockOSThread()
	defer close(r.stopped)

	if id, ok := CurrentThreadID(); ok {
		r.tid.Store(id)
		r.hasTID.Store(true)
	}
	close(ready)

	tok := Token{rt: r}
	for t := range r.queue {
		t.run(tok)
		r.executed.Add(1)
	}
}

// Name returns the runtime name.
func (r *Runtime) Name() string {
	return r.name
}

// ThreadID returns the OS thread id of the worker, if the platform exposes one.
func (r *Runtime) ThreadID() (int64, bool) {
	return r.tid.Load(), r.hasTID.Load()
}

// OnThread reports whether the caller is running on the affinity thread.
// It always reports false on platforms without thread ids.
func (r *Runtime) OnThread() bool {
	if !r.hasTID.Load() {
		return false
	}
	id, ok := CurrentThreadID()
	return ok && id == r.tid.Load()
}

// Closed reports whether Close has been called.
func (r *Runtime) Closed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

// Executed returns the number of units of work the worker has finished.
func (r *Runtime) Executed() uint64 {
	return r.executed.Load()
}

// Run executes fn on the affinity thread and waits for it.
func (r *Runtime) Run(fn func(Token) error) error {
	_, err := Call(r, func(tok Token) (struct{}, error) {
		return struct{}{}, fn(tok)
	})
	return err
}

// Call executes fn on the affinity thread and returns its result to the
// calling goroutine. When the caller already is the affinity thread the work
// runs inline.
func Call[T any](r *Runtime, fn func(Token) (T, error)) (T, error) {
	if r.OnThread() {
		return invoke(Token{rt: r}, fn)
	}

	done := make(chan result[T], 1)
	err := r.submit(func(tok Token) {
		v, err := invoke(tok, fn)
		done <- result[T]{val: v, err: err}
	})
	if err != nil {
		var zero T
		return zero, err
	}
	res := <-done
	return res.val, res.err
}

// Go queues fn without blocking the caller and returns a Future for its
// result. Work queued from one goroutine keeps its order while the queue has
// room; once it is full, the remaining submissions are handed to a background
// goroutine and ordering is no longer guaranteed.
func Go[T any](r *Runtime, fn func(Token) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	t := task{run: func(tok Token) {
		v, err := invoke(tok, fn)
		f.complete(v, err)
	}}

	queued, err := r.trySubmit(t)
	if err != nil {
		var zero T
		f.complete(zero, err)
		return f
	}
	if !queued {
		go func() {
			if err := r.submit(t.run); err != nil {
				var zero T
				f.complete(zero, err)
			}
		}()
	}
	return f
}

// Close stops accepting work, lets the worker finish what is already queued
// and waits for it to exit. Calls after Close fail with ErrThreadUnavailable.
func (r *Runtime) Close() error {
	if r.OnThread() {
		return errors.New("affinity: Close called from the affinity thread")
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		<-r.stopped
		return nil
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	<-r.stopped
	r.logger.Debug("affinity runtime stopped",
		zap.String("runtime", r.name),
		zap.Uint64("executed", r.executed.Load()))
	return nil
}

func (r *Runtime) submit(run func(Token)) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrThreadUnavailable
	}
	r.queue <- task{run: run}
	return nil
}

func (r *Runtime) trySubmit(t task) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false, ErrThreadUnavailable
	}
	select {
	case r.queue <- t:
		return true, nil
	default:
		return false, nil
	}
}

func invoke[T any](tok Token, fn func(Token) (T, error)) (val T, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			val = zero
			err = &InvocationError{Value: p, Stack: debug.Stack()}
			tok.rt.logger.Error("work panicked on affinity thread",
				zap.String("runtime", tok.rt.name),
				zap.Any("panic", p))
		}
	}()
	return fn(tok)
}

type result[T any] struct {
	val T
	err error
}

// Future is the pending result of work queued with Go.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.val = v
		f.err = err
		close(f.done)
	})
}

// Done is closed once the work has run or failed to be queued.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the work has finished.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}

// Wait blocks until the work has finished or ctx is done. A ctx error does
// not cancel the work; it still runs on the affinity thread.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
