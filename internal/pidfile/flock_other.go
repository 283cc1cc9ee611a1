//go:build !unix

package pidfile

import (
	"errors"
	"os"
)

// Advisory locking is only supported on unix. Create always fails here and
// Running treats any existing file as live.
func tryFlock(_ *os.File) error {
	return errors.New("pidfile: file locking is not supported on this platform")
}

func unlock(_ *os.File) {}

func processAlive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
