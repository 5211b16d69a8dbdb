// Package affinity runs work on a single dedicated OS thread.
//
// The native engine is not safe for concurrent access and must only be
// touched from the thread it was initialized on. A Runtime owns one goroutine
// pinned to an OS thread with runtime.LockOSThread and executes queued work
// there, one unit at a time, in submission order.
//
// Two submission modes exist:
//
//	// Call-and-wait: blocks the caller until the work has run.
//	n, err := affinity.Call(rt, func(tok affinity.Token) (int, error) {
//		return engine.Count(handle.Ptr(tok)), nil
//	})
//
//	// Fire-and-continue: returns a Future immediately.
//	fut := affinity.Go(rt, func(tok affinity.Token) (struct{}, error) {
//		engine.Release(handle.Ptr(tok))
//		return struct{}{}, nil
//	})
//
// Work receives a Token. Raw engine pointers are carried in Handle values,
// and Handle.Ptr requires a Token, so a pointer can only be read by code that
// is running on the affinity thread.
//
// Work is never cancelled. A caller that wants a deadline waits on a Future
// with a context and accepts that the queued work still runs.
package affinity
