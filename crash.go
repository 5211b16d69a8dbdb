//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"sync"

	"go.uber.org/zap"
)

// CrashHandler receives the message of a fatal engine error. The engine is in
// an undefined state when it runs and the process is about to terminate, so
// implementations should only record the message.
type CrashHandler interface {
	HandleCrash(message string)
}

// CrashHandlerFunc adapts a function to CrashHandler.
type CrashHandlerFunc func(message string)

// HandleCrash calls f(message).
func (f CrashHandlerFunc) HandleCrash(message string) { f(message) }

// LogCrashHandler writes the message to Logger() at error level and syncs it.
// It is installed by default.
type LogCrashHandler struct{}

// HandleCrash implements CrashHandler.
func (LogCrashHandler) HandleCrash(message string) {
	l := Logger()
	l.Error("libobs crashed", zap.String("message", message))
	_ = l.Sync()
}

// The crash handler is process-wide. It is installed into the engine once per
// Start and stays valid after Shutdown; SetCrashHandler may be called at any
// time, including before Start.
var (
	crashMu      sync.Mutex
	crashHandler CrashHandler = LogCrashHandler{}
)

// SetCrashHandler replaces the process-wide crash handler and returns the
// previous one. Passing nil restores LogCrashHandler.
func SetCrashHandler(h CrashHandler) CrashHandler {
	if h == nil {
		h = LogCrashHandler{}
	}
	crashMu.Lock()
	defer crashMu.Unlock()
	prev := crashHandler
	crashHandler = h
	return prev
}

// handleCrash is the engine crash hook. The handler runs outside crashMu.
func handleCrash(message string) {
	crashMu.Lock()
	h := crashHandler
	crashMu.Unlock()
	h.HandleCrash(message)
}
