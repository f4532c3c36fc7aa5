//go:build linux

package sys

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinToCore binds the calling goroutine's thread to one CPU core. The
// goroutine is locked to its thread first so the affinity sticks to it.
func PinToCore(coreID int) error {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(coreID)

	return unix.SchedSetaffinity(unix.Gettid(), &set)
}
