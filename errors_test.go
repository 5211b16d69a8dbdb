//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obinnaokechukwu/obsgo/affinity"
)

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindOutputStopFailure, Op: "output.stop", Detail: "disconnected", Status: -3}
	assert.Equal(t, "obsgo output.stop: output_stop_failure: disconnected (status -3)", err.Error())

	wrapped := wrapError(KindConfig, "config.load", errors.New("no such file"))
	assert.Equal(t, "obsgo config.load: config: no such file", wrapped.Error())
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("starting: %w", newError(KindNullPointer, "scene.create", "obs_scene_create returned NULL"))

	assert.ErrorIs(t, err, ErrNullPointer)
	assert.NotErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, KindNullPointer, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestErrorIsIgnoresNonSentinels(t *testing.T) {
	a := newError(KindInvalidOperation, "a", "x")
	b := newError(KindInvalidOperation, "b", "y")
	assert.False(t, errors.Is(a, b), "only bare kind sentinels match by kind")
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := wrapError(KindStartupFailure, "start", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStartupFailure)
}

func TestRuntimeErrorClassification(t *testing.T) {
	assert.Nil(t, runtimeError("op", nil))

	inv := runtimeError("op", &affinity.InvocationError{Value: "panic"})
	assert.ErrorIs(t, inv, ErrInvocation)

	closed := runtimeError("op", affinity.ErrThreadUnavailable)
	assert.ErrorIs(t, closed, ErrThreadFailure)

	own := newError(KindSourceNotFound, "op", "x")
	assert.Same(t, own, runtimeError("op", own))
}
