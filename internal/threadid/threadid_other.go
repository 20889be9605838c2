//go:build !linux

package threadid

import "os"

// Get returns the process id; per-thread ids are only exposed on linux.
func Get() int {
	return os.Getpid()
}
