package pidfile

import (
	"errors"
	"fmt"
)

// Sentinel errors usable with errors.Is.
var (
	// ErrNotRunning indicates no live process owns the pid file.
	ErrNotRunning = errors.New("no live process owns the pid file")

	// ErrNotOwner indicates the pid file records a different process.
	ErrNotOwner = errors.New("pid file is owned by another process")
)

// OwnershipError reports a precondition violation on Remove or a guard:
// the caller asked to give up ownership it does not hold. It is distinct
// from the boolean soft failures of Create, which are expected under
// contention and handled by retrying.
type OwnershipError struct {
	Path  string
	Owner int
	Err   error
}

func (e *OwnershipError) Error() string {
	if e.Owner > 0 {
		return fmt.Sprintf("pidfile: %v (path %s, owner pid %d)", e.Err, e.Path, e.Owner)
	}
	return fmt.Sprintf("pidfile: %v (path %s)", e.Err, e.Path)
}

func (e *OwnershipError) Unwrap() error {
	return e.Err
}
