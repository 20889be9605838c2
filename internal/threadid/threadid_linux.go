//go:build linux

package threadid

import "golang.org/x/sys/unix"

// Get returns the OS thread id of the calling goroutine's current thread.
// Callers that need a stable answer should runtime.LockOSThread first.
func Get() int {
	return unix.Gettid()
}
