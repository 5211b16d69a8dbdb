//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"errors"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// The engine keeps process-wide state, so at most one Context may be live.
// running is set by Start before touching the engine and cleared once
// Shutdown (or a failed Start) has fully torn it down.
var (
	runningMu sync.Mutex
	running   bool
)

func acquireProcess() error {
	runningMu.Lock()
	defer runningMu.Unlock()
	if running {
		return newError(KindThreadFailure, "start", "an engine is already running in this process")
	}
	running = true
	return nil
}

func releaseProcess() {
	runningMu.Lock()
	running = false
	runningMu.Unlock()
}

// StartOption configures Start.
type StartOption func(*startOptions)

type startOptions struct {
	engine libobs.Engine
	logger *zap.Logger
}

// WithEngine runs the context on e instead of loading libobs.
func WithEngine(e libobs.Engine) StartOption {
	return func(o *startOptions) {
		o.engine = e
	}
}

// WithLogger sets the context logger. It defaults to Logger().
func WithLogger(l *zap.Logger) StartOption {
	return func(o *startOptions) {
		o.logger = l
	}
}

// Context is a running engine. Every object created from it calls the engine
// through the context's affinity runtime.
type Context struct {
	engine libobs.Engine
	rt     *affinity.Runtime
	log    *zap.Logger
	info   StartupInfo

	nonBlockingDrops bool

	guards   guards
	subs     subscriptions
	channels channels

	mu             sync.Mutex // guards the fields below
	graphicsModule string
	dataPathAdded  bool
	closed         bool
}

// Start initializes the engine on a new affinity thread. A nil info uses
// DefaultStartupInfo.
//
// The engine is started, search paths are registered, modules are loaded,
// and the video and audio pipelines are reset, in that order. If any step
// fails, what was done is undone and the error returned.
func Start(info *StartupInfo, opts ...StartOption) (*Context, error) {
	if info == nil {
		info = DefaultStartupInfo()
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}

	var o startOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	if err := acquireProcess(); err != nil {
		return nil, err
	}

	if o.engine == nil {
		lib, err := libobs.Open(info.LibraryPath)
		if err != nil {
			releaseProcess()
			return nil, wrapError(KindStartupFailure, "start", err)
		}
		o.logger.Info("loaded libobs", zap.String("path", lib.Path()))
		o.engine = lib
	}

	c := &Context{
		engine:           o.engine,
		log:              o.logger,
		info:             *info,
		nonBlockingDrops: info.NonBlockingDrops,
		rt:               affinity.New(affinity.WithName("obsgo"), affinity.WithLogger(o.logger)),
	}

	if err := c.startup(); err != nil {
		_ = c.rt.Close()
		releaseProcess()
		return nil, err
	}
	return c, nil
}

func (c *Context) startup() error {
	return run(c, "start", func(tok affinity.Token, e libobs.Engine) error {
		info := &c.info
		if !e.Startup(info.Locale, info.ModuleConfigPath) {
			return newError(KindStartupFailure, "start", "obs_startup failed")
		}
		c.log.Info("libobs started", zap.String("version", e.Version()), zap.String("locale", info.Locale))
		c.installHooks(e)

		err := c.loadModules(e)
		if err == nil {
			err = c.resetVideo(e, info.Video)
		}
		if err == nil && !e.ResetAudio(&libobs.AudioInfo{SamplesPerSec: info.Audio.SamplesPerSec, Speakers: info.Audio.Speakers}) {
			err = newError(KindStartupFailure, "start", "obs_reset_audio failed")
		}
		if err != nil {
			c.teardown(e)
			return err
		}
		return nil
	})
}

func (c *Context) installHooks(e libobs.Engine) {
	if err := e.InstallCrashHook(handleCrash); err != nil {
		c.log.Debug("crash hook not installed", zap.Error(err))
	}
	if err := e.InstallLogHook(forwardLog); err != nil {
		c.log.Debug("native log forwarding not installed", zap.Error(err))
	}
}

// teardown undoes startup on the affinity thread.
func (c *Context) teardown(e libobs.Engine) {
	c.mu.Lock()
	removePath := c.dataPathAdded
	c.dataPathAdded = false
	c.mu.Unlock()

	if removePath {
		e.RemoveDataPath(c.info.Paths.LibobsData)
	}
	e.Shutdown()
	c.log.Info("libobs shut down", zap.Int64("leaked_allocations", e.NumAllocs()))
}

// Shutdown disconnects open subscriptions, clears the output channels and
// releases every native reference the caller still holds. It then shuts the
// engine down on the affinity thread and stops the thread. The context
// cannot be used afterwards. Calling Shutdown twice is a no-op.
func (c *Context) Shutdown() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	var errs error
	errs = multierr.Append(errs, c.closeSubscriptions())
	errs = multierr.Append(errs, c.clearChannels())

	if live := c.liveGuards(); len(live) > 0 {
		c.log.Debug("releasing references still held at shutdown", zap.Int("count", len(live)))
		for _, g := range live {
			errs = multierr.Append(errs, g.releaseNative(dropSync))
		}
	}

	errs = multierr.Append(errs, run(c, "shutdown", func(tok affinity.Token, e libobs.Engine) error {
		c.teardown(e)
		return nil
	}))

	errs = multierr.Append(errs, c.rt.Close())
	releaseProcess()
	return errs
}

// Closed reports whether Shutdown has been called.
func (c *Context) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Runtime returns the affinity runtime the context calls the engine on.
func (c *Context) Runtime() *affinity.Runtime {
	return c.rt
}

// Logger returns the context logger.
func (c *Context) Logger() *zap.Logger {
	return c.log
}

// Run executes fn on the affinity thread with direct access to the engine.
// Pointers obtained from e must not escape fn.
func (c *Context) Run(fn func(tok affinity.Token, e libobs.Engine) error) error {
	if c.Closed() {
		return newError(KindThreadFailure, "run", "context is shut down")
	}
	return run(c, "run", fn)
}

// Version returns the engine version string.
func (c *Context) Version() (string, error) {
	return call(c, "version", func(_ affinity.Token, e libobs.Engine) (string, error) {
		return e.Version(), nil
	})
}

// ensureOpen reports a thread failure once the context is shut down.
func (c *Context) ensureOpen(op string) error {
	if c.Closed() {
		return wrapError(KindThreadFailure, op, errors.New("context is shut down"))
	}
	return nil
}
