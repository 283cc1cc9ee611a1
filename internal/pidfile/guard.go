package pidfile

import (
	"fmt"
	"log/slog"
	"sync"
)

// ModeRemove is the guard mode that removes the pid file on Close.
const ModeRemove = "remove"

// GuardToken is a disposable capability: Close invokes the cleanup action
// supplied at construction exactly once. A token has one owner; it is not
// meant to be copied or shared.
type GuardToken struct {
	logger *slog.Logger
	once   sync.Once
	action func() error
}

func NewGuardToken(logger *slog.Logger, action func() error) *GuardToken {
	return &GuardToken{
		logger: logger,
		action: action,
	}
}

// NewGuard builds a token for an already-owned PidFile from a mode name.
// Convenience sugar over DetachGuard's action, not separate behavior.
func NewGuard(logger *slog.Logger, p *PidFile, mode string) (*GuardToken, error) {
	switch mode {
	case ModeRemove:
		return NewGuardToken(logger, func() error {
			return p.Remove(false)
		}), nil
	default:
		return nil, fmt.Errorf("pidfile: unknown guard mode %q", mode)
	}
}

// Close runs the action once. Later calls are no-ops and a failure is also
// logged, since tokens are usually closed by defer with the result ignored.
func (t *GuardToken) Close() error {
	var err error
	t.once.Do(func() {
		if t.action != nil {
			err = t.action()
		}
	})

	if err != nil && t.logger != nil {
		t.logger.Warn("pidfile: guard cleanup failed", slog.Any("error", err))
	}

	return err
}

// ArmSelfCleanup makes Close remove the file. The ownership check is the
// same as Remove's unforced branch. The cleanup slot is an explicit field
// cleared by Remove, so an explicit removal disarms it and Close never
// removes twice. With force the removal itself is forced as well.
func (p *PidFile) ArmSelfCleanup(force bool) error {
	if err := p.guardCheck(force); err != nil {
		return err
	}

	p.cleanup = func() {
		if err := p.Remove(force); err != nil {
			p.logger.Warn("pidfile: self cleanup failed", slog.Any("error", err))
		}
	}

	return nil
}

// DetachGuard returns a token whose Close removes the file. The token's
// lifetime, not the PidFile's, drives the cleanup: it may be closed before
// or after the PidFile itself and may outlive it.
func (p *PidFile) DetachGuard(force bool) (*GuardToken, error) {
	if err := p.guardCheck(force); err != nil {
		return nil, err
	}

	return NewGuardToken(p.logger, func() error {
		return p.Remove(force)
	}), nil
}

func (p *PidFile) guardCheck(force bool) error {
	if force {
		return nil
	}

	path, err := p.File()
	if err != nil {
		return err
	}

	return p.checkOwnership(path)
}
