//go:build darwin

package affinity

import (
	"sync"

	"github.com/ebitengine/purego"
)

var (
	threadIDOnce sync.Once
	threadIDFunc func(thread uintptr, id *uint64) int32
)

func loadThreadID() {
	lib, err := purego.Dlopen("/usr/lib/libSystem.B.dylib", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return
	}
	if _, err := purego.Dlsym(lib, "pthread_threadid_np"); err != nil {
		return
	}
	purego.RegisterLibFunc(&threadIDFunc, lib, "pthread_threadid_np")
}

// CurrentThreadID returns the OS thread id of the calling goroutine's thread.
// The second result is false on platforms without a thread id primitive.
func CurrentThreadID() (int64, bool) {
	threadIDOnce.Do(loadThreadID)
	if threadIDFunc == nil {
		return 0, false
	}
	var id uint64
	if threadIDFunc(0, &id) != 0 {
		return 0, false
	}
	return int64(id), true
}
