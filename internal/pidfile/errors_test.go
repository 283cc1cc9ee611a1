package pidfile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnershipErrorMessage(t *testing.T) {
	err := &OwnershipError{Path: "/tmp/test.pid", Err: ErrNotRunning}
	assert.Contains(t, err.Error(), "/tmp/test.pid")
	assert.Contains(t, err.Error(), ErrNotRunning.Error())

	withOwner := &OwnershipError{Path: "/tmp/test.pid", Owner: 42, Err: ErrNotOwner}
	assert.Contains(t, withOwner.Error(), "owner pid 42")
}

func TestOwnershipErrorUnwrap(t *testing.T) {
	err := &OwnershipError{Path: "/tmp/test.pid", Err: ErrNotOwner}

	assert.True(t, errors.Is(err, ErrNotOwner))
	assert.False(t, errors.Is(err, ErrNotRunning))

	var target *OwnershipError
	assert.True(t, errors.As(err, &target))
}
