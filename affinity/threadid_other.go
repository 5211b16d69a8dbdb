//go:build !linux && !windows && !darwin

package affinity

// CurrentThreadID returns the OS thread id of the calling goroutine's thread.
// The second result is false on platforms without a thread id primitive.
func CurrentThreadID() (int64, bool) {
	return 0, false
}
