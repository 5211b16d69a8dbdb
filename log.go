//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/internal/shim"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// LogLevel represents libobs log levels.
type LogLevel = libobs.LogLevel

// Log level constants matching libobs' LOG_* values.
const (
	LogError   = libobs.LogError   // Something went wrong, recovery possible
	LogWarning = libobs.LogWarning // Something unexpected but recovery possible
	LogInfo    = libobs.LogInfo    // Standard information
	LogDebug   = libobs.LogDebug   // Stuff for debugging
)

// LogCallback is called for each libobs log message.
// level is the log level, message is the formatted message.
// It runs on whichever engine thread logged and must not call into the
// engine.
type LogCallback func(level LogLevel, message string)

var logCallback atomic.Pointer[LogCallback]

// SetLogCallback sets a custom handler for libobs messages.
// Pass nil to restore forwarding to Logger().
// Native messages only arrive when the obsshim helper library is installed.
func SetLogCallback(cb LogCallback) {
	if cb == nil {
		logCallback.Store(nil)
		return
	}
	logCallback.Store(&cb)
}

// SetLogLevel drops native messages above level before they reach Go.
// This requires the obsshim library to be available.
func SetLogLevel(level LogLevel) error {
	if err := shim.Load(); err != nil {
		return err
	}
	return shim.SetLogLevel(int32(level))
}

// IsLoggingAvailable returns true if native log forwarding is available.
func IsLoggingAvailable() bool {
	if err := shim.Load(); err != nil {
		return false
	}
	return shim.IsLoaded()
}

// forwardLog is the engine log hook.
func forwardLog(level LogLevel, message string) {
	if cb := logCallback.Load(); cb != nil {
		(*cb)(level, message)
		return
	}

	l := Logger().With(zap.String("component", "libobs"))
	switch {
	case level <= LogError:
		l.Error(message)
	case level <= LogWarning:
		l.Warn(message)
	case level <= LogInfo:
		l.Info(message)
	default:
		l.Debug(message)
	}
}
