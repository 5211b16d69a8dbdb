//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// StopEvent is delivered when an output stops. Code is 0 on a clean stop;
// LastError is the engine's message for any other code, when it has one.
type StopEvent struct {
	Code      int64
	LastError string
}

// OutputSignals subscribes to the signals of one output.
type OutputSignals struct {
	out *Output
}

// Signals returns the signal manager of o.
func (o *Output) Signals() OutputSignals {
	return OutputSignals{out: o}
}

func subscribeOutput[T any](sigs OutputSignals, signal string, decode decoder[T]) (*Subscription[T], error) {
	owner, err := sigs.out.Clone()
	if err != nil {
		return nil, err
	}
	return subscribe(sigs.out.ctx, signal, owner, func(tok affinity.Token, e libobs.Engine) libobs.SignalHandler {
		return e.OutputGetSignalHandler(owner.h.Ptr(tok))
	}, decode)
}

// Start fires once the output is running.
func (sigs OutputSignals) Start() (*Subscription[struct{}], error) {
	return subscribeOutput(sigs, "start", decodeNothing)
}

// Stop fires once the output has stopped.
func (sigs OutputSignals) Stop() (*Subscription[StopEvent], error) {
	return subscribeOutput(sigs, "stop", func(_ *Context, e libobs.Engine, cd libobs.Calldata) (StopEvent, bool) {
		code, _ := e.CalldataGetInt(cd, "code")
		return StopEvent{Code: code, LastError: calldataString(e, cd, "last_error")}, true
	})
}

// Pause fires when the output is paused.
func (sigs OutputSignals) Pause() (*Subscription[struct{}], error) {
	return subscribeOutput(sigs, "pause", decodeNothing)
}

// Unpause fires when the output resumes.
func (sigs OutputSignals) Unpause() (*Subscription[struct{}], error) {
	return subscribeOutput(sigs, "unpause", decodeNothing)
}

// Activate fires when the output starts receiving data.
func (sigs OutputSignals) Activate() (*Subscription[struct{}], error) {
	return subscribeOutput(sigs, "activate", decodeNothing)
}

// Deactivate fires when the output stops receiving data.
func (sigs OutputSignals) Deactivate() (*Subscription[struct{}], error) {
	return subscribeOutput(sigs, "deactivate", decodeNothing)
}

// Reconnect fires when a streaming output starts reconnecting.
func (sigs OutputSignals) Reconnect() (*Subscription[struct{}], error) {
	return subscribeOutput(sigs, "reconnect", decodeNothing)
}

// Saved fires when a replay buffer has written its buffer to disk.
func (sigs OutputSignals) Saved() (*Subscription[struct{}], error) {
	return subscribeOutput(sigs, "saved", decodeNothing)
}
