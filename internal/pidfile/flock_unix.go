//go:build unix

package pidfile

import (
	"errors"
	"os"
	"syscall"
)

// tryFlock takes an exclusive non-blocking advisory lock on f. The lock
// belongs to the open file description, so it is released when f is closed
// and by the OS when the process dies, even on SIGKILL.
func tryFlock(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

func unlock(f *os.File) {
	_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}

// processAlive probes pid with signal 0, which checks existence and
// permission without affecting the target. EPERM means the process exists
// but belongs to someone else, so it counts as alive.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	if errors.Is(err, syscall.EPERM) {
		return true
	}

	return false
}
