//go:build windows

package affinity

import "golang.org/x/sys/windows"

// CurrentThreadID returns the OS thread id of the calling goroutine's thread.
// The second result is false on platforms without a thread id primitive.
func CurrentThreadID() (int64, bool) {
	return int64(windows.GetCurrentThreadId()), true
}
