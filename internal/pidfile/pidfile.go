package pidfile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hwickert/pidkeep/internal/clock"
)

const (
	// DefaultSleep is the pause between create attempts.
	DefaultSleep = time.Second

	// DefaultRetries is the number of additional attempts after the first.
	DefaultRetries = 0
)

// PidFile represents one lock-file slot bound to a filesystem path.
type PidFile struct {
	logger *slog.Logger
	clock  clock.Clock

	path        string
	resolved    bool
	programDir  string
	programBase string

	pid     int
	file    *os.File
	cleanup func()
	closed  bool
}

type Option func(*PidFile)

// WithPath sets the file path explicitly. A relative path is anchored to
// the program directory on first resolution.
func WithPath(path string) Option {
	return func(p *PidFile) {
		p.path = path
	}
}

// WithProgramInfo injects the directory and base name used to derive the
// default path. The surrounding application computes these once at startup
// (typically from os.Executable) instead of the library reaching into
// ambient program state.
func WithProgramInfo(dir, base string) Option {
	return func(p *PidFile) {
		p.programDir = dir
		p.programBase = base
	}
}

func WithClock(c clock.Clock) Option {
	return func(p *PidFile) {
		p.clock = c
	}
}

func New(logger *slog.Logger, opts ...Option) *PidFile {
	p := &PidFile{
		logger: logger,
		clock:  clock.NewSystemClock(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// File resolves and returns the path. When no explicit path was set the
// default is {programDir}/{programBase}.pid; a relative explicit path is
// rewritten under the program directory. The result is memoized and no
// filesystem side effects occur.
func (p *PidFile) File() (string, error) {
	if p.resolved {
		return p.path, nil
	}

	dir := p.programDir
	base := p.programBase

	if dir == "" || base == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("pidfile: could not resolve program path: %w", err)
		}
		if dir == "" {
			dir = filepath.Dir(exe)
		}
		if base == "" {
			name := filepath.Base(exe)
			base = strings.TrimSuffix(name, filepath.Ext(name))
		}
	}

	switch {
	case p.path == "":
		p.path = filepath.Join(dir, base+".pid")
	case !filepath.IsAbs(p.path):
		p.path = filepath.Join(dir, p.path)
	}

	p.resolved = true
	return p.path, nil
}

// SetFile overrides the path. The next call to File resolves it again.
func (p *PidFile) SetFile(path string) {
	p.path = path
	p.resolved = false
}

// Pid returns the last known owner of the file, 0 when unset.
func (p *PidFile) Pid() int {
	return p.pid
}

// Running reports whether a live process currently owns the file.
//
// A live owner holds the flock continuously, so a failed non-blocking lock
// on the probe handle means running. When the lock succeeds the file is
// stale or unowned and the recorded PID decides: it is read, remembered,
// and probed with a zero-effect signal.
func (p *PidFile) Running() bool {
	path, err := p.File()
	if err != nil {
		p.pid = 0
		return false
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		p.pid = 0
		return false
	}

	if err := tryFlock(f); err != nil {
		_ = f.Close()
		return true
	}

	data, err := io.ReadAll(f)
	if err == nil {
		if pid, perr := strconv.Atoi(strings.TrimSpace(string(data))); perr == nil && pid > 0 {
			p.pid = pid
		}
	}

	unlock(f)
	_ = f.Close()

	if p.pid == 0 {
		return false
	}

	return processAlive(p.pid)
}

// createOnce is a single create attempt. The liveness pre-check is a fast
// path; the non-blocking flock is the real mutual exclusion, so losing the
// race after the check still fails cleanly. On success the handle stays
// open and keeps the lock for the lifetime of the ownership claim.
func (p *PidFile) createOnce() bool {
	if p.Running() {
		return false
	}

	path, err := p.File()
	if err != nil {
		p.logger.Debug("pidfile: could not resolve path", slog.Any("error", err))
		return false
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0o644)
	if err != nil {
		p.logger.Debug("pidfile: could not open file", slog.String("path", path), slog.Any("error", err))
		return false
	}

	if err := tryFlock(f); err != nil {
		_ = f.Close()
		p.logger.Debug("pidfile: lost create race", slog.String("path", path), slog.Any("error", err))
		return false
	}

	if _, err := f.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		_ = f.Close()
		p.logger.Debug("pidfile: could not write pid", slog.String("path", path), slog.Any("error", err))
		return false
	}

	p.file = f
	p.pid = os.Getpid()
	return true
}

// Create attempts to take ownership of the file, retrying on failure.
// Total attempts = retries + 1, with sleep between them. Exhaustion and
// contention yield false, never an error; cancelling the context ends a
// pending wait early.
func (p *PidFile) Create(ctx context.Context, sleep time.Duration, retries int) bool {
	for attempt := 0; ; attempt++ {
		if p.createOnce() {
			return true
		}

		if attempt >= retries {
			return false
		}

		p.logger.DebugContext(ctx, "pidfile: create failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("sleep", sleep))

		select {
		case <-ctx.Done():
			return false
		case <-p.clock.After(sleep):
		}
	}
}

// Remove deletes the file and releases the lock. Without force it requires
// a live owned process: Running must be true and the recorded owner, if
// any, must be this process; violations return an *OwnershipError. A
// failed unlink is best-effort and never leaves the owner recorded.
func (p *PidFile) Remove(force bool) error {
	path, err := p.File()
	if err != nil {
		return err
	}

	if !force {
		if err := p.checkOwnership(path); err != nil {
			return err
		}
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn("pidfile: could not remove file",
			slog.String("path", path),
			slog.Any("error", err))
	}

	p.releaseLock()
	p.pid = 0
	p.cleanup = nil
	return nil
}

// Close is the destruction point of the PidFile: it runs the current
// cleanup action at most once, swallowing any failure, then releases a
// still-held lock. The object is inert afterwards.
func (p *PidFile) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	cleanup := p.cleanup
	p.cleanup = nil
	if cleanup != nil {
		cleanup()
	}

	p.releaseLock()
	return nil
}

func (p *PidFile) checkOwnership(path string) error {
	if !p.Running() {
		return &OwnershipError{Path: path, Err: ErrNotRunning}
	}
	if p.pid != 0 && p.pid != os.Getpid() {
		return &OwnershipError{Path: path, Owner: p.pid, Err: ErrNotOwner}
	}
	return nil
}

func (p *PidFile) releaseLock() {
	if p.file == nil {
		return
	}
	unlock(p.file)
	_ = p.file.Close()
	p.file = nil
}
