// Package pidfile manages a single-instance PID file with advisory locking.
//
// A PidFile binds one process to one filesystem path. Create writes the
// current process id into the file while holding an exclusive non-blocking
// flock; the write handle stays open for as long as the process claims
// ownership, so the lock survives until Remove or Close. Liveness of a
// recorded owner is checked with a zero-effect signal probe, which lets a
// stale file left behind by a crashed owner be distinguished from a live
// one still holding the lock.
//
// Cleanup can be tied to scope in two ways: ArmSelfCleanup makes the
// PidFile remove its own file when it is closed, and DetachGuard returns a
// GuardToken whose Close performs the removal independently of the
// PidFile's own lifetime. Either way the removal runs at most once.
//
// Coordination between processes happens purely through the filesystem:
// file existence, the flock, and the textual PID inside the file. A single
// PidFile is not safe for concurrent use by multiple goroutines, and two
// PidFile values bound to the same path within one process are not a
// supported configuration.
package pidfile
