//go:build !ios && !android && (amd64 || arm64)

package obstest

import (
	"unsafe"

	"github.com/obinnaokechukwu/obsgo/libobs"
)

func (e *Engine) handler(sh libobs.SignalHandler) *signalHandler {
	if sh == nil {
		return nil
	}
	return (*signalHandler)(unsafe.Pointer(sh))
}

func (e *Engine) SignalHandlerConnect(sh libobs.SignalHandler, signal string, data uintptr) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SignalHandlerConnect")
	h := e.handler(sh)
	if h == nil {
		e.violation("SignalHandlerConnect: nil handler for %q", signal)
		return
	}
	h.conns[signal] = append(h.conns[signal], data)
}

func (e *Engine) SignalHandlerDisconnect(sh libobs.SignalHandler, signal string, data uintptr) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("SignalHandlerDisconnect")
	h := e.handler(sh)
	if h == nil {
		return
	}
	conns := h.conns[signal]
	for i, c := range conns {
		if c == data {
			h.conns[signal] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[signal]) == 0 {
		delete(h.conns, signal)
	}
}

// ProcHandlerCall implements the procedures of the replay buffer output:
// "save" emits "saved" from another goroutine and "get_last_replay" fills in
// the "path" parameter with ReplayPath.
func (e *Engine) ProcHandlerCall(ph libobs.ProcHandler, name string, cd libobs.Calldata) bool {
	e.mu.Lock()
	e.check("ProcHandlerCall")
	if ph == nil {
		e.mu.Unlock()
		return false
	}
	owner := (*procHandler)(unsafe.Pointer(ph)).owner
	if owner.id != "replay_buffer" {
		e.mu.Unlock()
		return false
	}

	switch name {
	case "save":
		if !owner.active {
			e.mu.Unlock()
			return false
		}
		em := e.prepare(owner.sh, "saved", map[string]any{"output": unsafe.Pointer(owner)})
		e.mu.Unlock()
		go e.deliver(em)
		return true
	case "get_last_replay":
		c := e.lookup(unsafe.Pointer(cd), KindCalldata)
		if c == nil {
			e.mu.Unlock()
			return false
		}
		if e.ReplayPath != "" {
			c.params["path"] = []byte(e.ReplayPath)
		}
		e.mu.Unlock()
		return true
	}
	e.mu.Unlock()
	return false
}

func (e *Engine) CalldataCreate() libobs.Calldata {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("CalldataCreate")
	cd := e.alloc(KindCalldata)
	cd.params = make(map[string]any)
	return libobs.Calldata(ptr(cd))
}

func (e *Engine) CalldataDestroy(cd libobs.Calldata) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.check("CalldataDestroy")
	if o := e.lookup(unsafe.Pointer(cd), KindCalldata); o != nil {
		e.free(o)
		return
	}
	e.violation("CalldataDestroy: unknown calldata %p", unsafe.Pointer(cd))
}

// param reads a calldata parameter. Calldata is read from whichever thread
// emitted the signal, so it is recorded without a thread check.
func (e *Engine) param(cd libobs.Calldata, name, op string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record(op)
	o := e.lookup(unsafe.Pointer(cd), KindCalldata)
	if o == nil {
		return nil, false
	}
	v, ok := o.params[name]
	return v, ok
}

func (e *Engine) CalldataGetInt(cd libobs.Calldata, name string) (int64, bool) {
	v, ok := e.param(cd, name, "CalldataGetInt")
	i, ok2 := v.(int64)
	return i, ok && ok2
}

func (e *Engine) CalldataGetBool(cd libobs.Calldata, name string) (bool, bool) {
	v, ok := e.param(cd, name, "CalldataGetBool")
	b, ok2 := v.(bool)
	return b, ok && ok2
}

func (e *Engine) CalldataGetFloat(cd libobs.Calldata, name string) (float64, bool) {
	v, ok := e.param(cd, name, "CalldataGetFloat")
	f, ok2 := v.(float64)
	return f, ok && ok2
}

func (e *Engine) CalldataGetString(cd libobs.Calldata, name string) ([]byte, bool) {
	v, ok := e.param(cd, name, "CalldataGetString")
	s, ok2 := v.([]byte)
	return s, ok && ok2
}

func (e *Engine) CalldataGetPtr(cd libobs.Calldata, name string) (uintptr, bool) {
	v, ok := e.param(cd, name, "CalldataGetPtr")
	p, ok2 := v.(uintptr)
	return p, ok && ok2
}

// Hooks

func (e *Engine) InstallCrashHook(fn func(string)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("InstallCrashHook")
	e.crashHook = fn
	return nil
}

func (e *Engine) InstallLogHook(fn func(libobs.LogLevel, string)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("InstallLogHook")
	e.logHook = fn
	return nil
}
