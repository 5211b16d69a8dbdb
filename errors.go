//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// Kind classifies an Error.
type Kind string

// Error kinds.
const (
	KindStartupFailure                  Kind = "startup_failure"
	KindThreadFailure                   Kind = "thread_failure"
	KindNullPointer                     Kind = "null_pointer"
	KindInvalidOperation                Kind = "invalid_operation"
	KindLockError                       Kind = "lock_error"
	KindResetVideoFailure               Kind = "reset_video_failure"
	KindResetVideoFailureGraphicsModule Kind = "reset_video_failure_graphics_module"
	KindOutputStartFailure              Kind = "output_start_failure"
	KindOutputStopFailure               Kind = "output_stop_failure"
	KindOutputAlreadyActive             Kind = "output_already_active"
	KindOutputPauseFailure              Kind = "output_pause_failure"
	KindOutputSaveBufferFailure         Kind = "output_save_buffer_failure"
	KindStringConversion                Kind = "string_conversion"
	KindJSONParse                       Kind = "json_parse"
	KindSourceNotFound                  Kind = "source_not_found"
	KindInvocation                      Kind = "invocation"
	KindConfig                          Kind = "config"
)

// Error is returned by every operation of the package.
type Error struct {
	Kind   Kind
	Op     string // operation that failed, e.g. "scene.set_to_channel"
	Detail string // engine message or explanation, may be empty
	Status int    // native status code, when the engine reported one
	Cause  error  // underlying error, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "obsgo"
	if e.Op != "" {
		msg += " " + e.Op
	}
	msg += ": " + string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the kind sentinels, so errors.Is(err, ErrNullPointer) holds
// for any Error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Detail == "" && t.Status == 0 && t.Cause == nil
}

// Kind sentinels for errors.Is.
var (
	ErrStartupFailure                  = &Error{Kind: KindStartupFailure}
	ErrThreadFailure                   = &Error{Kind: KindThreadFailure}
	ErrNullPointer                     = &Error{Kind: KindNullPointer}
	ErrInvalidOperation                = &Error{Kind: KindInvalidOperation}
	ErrLockError                       = &Error{Kind: KindLockError}
	ErrResetVideoFailure               = &Error{Kind: KindResetVideoFailure}
	ErrResetVideoFailureGraphicsModule = &Error{Kind: KindResetVideoFailureGraphicsModule}
	ErrOutputStartFailure              = &Error{Kind: KindOutputStartFailure}
	ErrOutputStopFailure               = &Error{Kind: KindOutputStopFailure}
	ErrOutputAlreadyActive             = &Error{Kind: KindOutputAlreadyActive}
	ErrOutputPauseFailure              = &Error{Kind: KindOutputPauseFailure}
	ErrOutputSaveBufferFailure         = &Error{Kind: KindOutputSaveBufferFailure}
	ErrStringConversion                = &Error{Kind: KindStringConversion}
	ErrJSONParse                       = &Error{Kind: KindJSONParse}
	ErrSourceNotFound                  = &Error{Kind: KindSourceNotFound}
	ErrInvocation                      = &Error{Kind: KindInvocation}
	ErrConfig                          = &Error{Kind: KindConfig}
)

// KindOf returns the kind of the first Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

func wrapError(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Cause: cause}
}

func nullPointer(op, what string) *Error {
	return newError(KindNullPointer, op, what+" returned NULL")
}

// runtimeError classifies an error returned by the affinity runtime. Errors
// produced by the work itself pass through unchanged.
func runtimeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, affinity.ErrInvocation):
		return wrapError(KindInvocation, op, err)
	case errors.Is(err, affinity.ErrThreadUnavailable):
		return wrapError(KindThreadFailure, op, err)
	}
	return err
}

// call runs fn on the context's affinity thread.
func call[T any](c *Context, op string, fn func(tok affinity.Token, e libobs.Engine) (T, error)) (T, error) {
	v, err := affinity.Call(c.rt, func(tok affinity.Token) (T, error) {
		return fn(tok, c.engine)
	})
	return v, runtimeError(op, err)
}

// run is call without a result.
func run(c *Context, op string, fn func(tok affinity.Token, e libobs.Engine) error) error {
	_, err := call(c, op, func(tok affinity.Token, e libobs.Engine) (struct{}, error) {
		return struct{}{}, fn(tok, e)
	})
	return err
}
