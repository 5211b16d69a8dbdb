//go:build !ios && !android && (amd64 || arm64)

package obsgo

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/obinnaokechukwu/obsgo/affinity"
	"github.com/obinnaokechukwu/obsgo/libobs"
)

// ReplayBufferID is the output type id of replay buffers.
const ReplayBufferID = "replay_buffer"

// procCall runs a procedure of the output with fresh calldata and hands the
// calldata to read before it is destroyed.
func procCall(e libobs.Engine, p libobs.Output, name string, read func(cd libobs.Calldata)) bool {
	ph := e.OutputGetProcHandler(p)
	if ph == nil {
		return false
	}
	cd := e.CalldataCreate()
	if cd == nil {
		return false
	}
	defer e.CalldataDestroy(cd)
	if !e.ProcHandlerCall(ph, name, cd) {
		return false
	}
	if read != nil {
		read(cd)
	}
	return true
}

// SaveBuffer writes the contents of a running replay buffer to disk and
// returns the path of the file. It waits for the engine's "saved" signal or
// for ctx to be done.
//
// Outputs of any other type fail with KindOutputSaveBufferFailure without
// touching the engine.
func (o *Output) SaveBuffer(ctx context.Context) (string, error) {
	const op = "output.save_buffer"
	if o.id != ReplayBufferID {
		return "", newError(KindOutputSaveBufferFailure, op, "output "+o.name+" is a "+o.id+", not a replay buffer")
	}
	if err := o.alive(op); err != nil {
		return "", err
	}

	saved, err := o.Signals().Saved()
	if err != nil {
		return "", err
	}
	defer func() { _ = saved.Close() }()

	err = o.exec(op, func(_ affinity.Token, p libobs.Output, e libobs.Engine) error {
		if !procCall(e, p, "save", nil) {
			return newError(KindOutputSaveBufferFailure, op, "save procedure failed")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	select {
	case <-saved.C():
	case <-ctx.Done():
		return "", wrapError(KindOutputSaveBufferFailure, op, ctx.Err())
	}

	var path []byte
	var found bool
	err = o.exec(op, func(_ affinity.Token, p libobs.Output, e libobs.Engine) error {
		ok := procCall(e, p, "get_last_replay", func(cd libobs.Calldata) {
			path, found = e.CalldataGetString(cd, "path")
		})
		if !ok {
			return newError(KindOutputSaveBufferFailure, op, "get_last_replay procedure failed")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if !found || len(path) == 0 {
		return "", newError(KindOutputSaveBufferFailure, op, "engine reported no replay path")
	}
	if !utf8.Valid(path) {
		return "", newError(KindOutputSaveBufferFailure, op, "replay path is not valid UTF-8")
	}
	o.ctx.log.Info("replay saved", zap.String("output", o.name), zap.ByteString("path", path))
	return string(path), nil
}
