package pidfile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeClock struct {
	waits int
}

func (f *fakeClock) Now() time.Time {
	return time.Now()
}

func (f *fakeClock) After(_ time.Duration) <-chan time.Time {
	f.waits++
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func TestFileDefaultPath(t *testing.T) {
	dir := t.TempDir()
	p := New(testLogger(), WithProgramInfo(dir, "prog"))

	path, err := p.File()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "prog.pid"), path)

	// memoized
	again, err := p.File()
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestFileRelativePathAnchored(t *testing.T) {
	dir := t.TempDir()
	p := New(testLogger(), WithProgramInfo(dir, "prog"), WithPath("custom.pid"))

	path, err := p.File()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom.pid"), path)
}

func TestFileAbsolutePathKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "explicit.pid")
	p := New(testLogger(), WithPath(abs))

	path, err := p.File()
	require.NoError(t, err)
	assert.Equal(t, abs, path)
}

func TestSetFileResolvesAgain(t *testing.T) {
	dir := t.TempDir()
	p := New(testLogger(), WithProgramInfo(dir, "prog"))

	_, err := p.File()
	require.NoError(t, err)

	p.SetFile("other.pid")

	path, err := p.File()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other.pid"), path)
}

func TestCreateSetsOwnership(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	p := New(testLogger(), WithPath(path))
	defer func() { _ = p.Close() }()

	require.True(t, p.Create(context.Background(), DefaultSleep, DefaultRetries))

	assert.True(t, p.Running())
	assert.Equal(t, os.Getpid(), p.Pid())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
}

func TestRunningNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	p := New(testLogger(), WithPath(path))

	assert.False(t, p.Running())
	assert.Equal(t, 0, p.Pid())
}

func TestRunningClearsPidWhenFileGone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	p := New(testLogger(), WithPath(path))
	defer func() { _ = p.Close() }()

	require.True(t, p.Create(context.Background(), DefaultSleep, DefaultRetries))
	require.Equal(t, os.Getpid(), p.Pid())

	// the lock handle keeps the flock, but the name is gone
	require.NoError(t, os.Remove(path))

	assert.False(t, p.Running())
	assert.Equal(t, 0, p.Pid())
}

func TestRunningStaleFileWithLivePid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644))

	p := New(testLogger(), WithPath(path))

	assert.True(t, p.Running())
	assert.Equal(t, os.Getpid(), p.Pid())
}

func TestRunningStaleFileWithDeadPid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	require.NoError(t, os.WriteFile(path, []byte("999999\n"), 0o644))

	p := New(testLogger(), WithPath(path))

	assert.False(t, p.Running())
	assert.Equal(t, 999999, p.Pid())
}

func TestRunningInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-number\n"), 0o644))

	p := New(testLogger(), WithPath(path))

	assert.False(t, p.Running())
	assert.Equal(t, 0, p.Pid())
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	p := New(testLogger(), WithPath(path))

	require.True(t, p.Create(context.Background(), DefaultSleep, DefaultRetries))

	require.NoError(t, p.Remove(false))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 0, p.Pid())

	// forced removal of an already-removed file is a no-op
	assert.NoError(t, p.Remove(true))
}

func TestRemoveWithoutLiveOwner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	p := New(testLogger(), WithPath(path))

	err := p.Remove(false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRunning)

	var ownErr *OwnershipError
	require.ErrorAs(t, err, &ownErr)
	assert.Equal(t, path, ownErr.Path)
}

func TestRemoveOwnedByOtherProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")

	// pid 1 is always alive and never this test process
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	p := New(testLogger(), WithPath(path))

	err := p.Remove(false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotOwner)

	var ownErr *OwnershipError
	require.ErrorAs(t, err, &ownErr)
	assert.Equal(t, 1, ownErr.Owner)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "unforced remove must not unlink a file it does not own")
}

func TestCreateRetriesThenGivesUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")

	// a live-looking entry the lock cannot displace
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644))

	fc := &fakeClock{}
	p := New(testLogger(), WithPath(path), WithClock(fc))

	assert.False(t, p.Create(context.Background(), time.Second, 2))
	assert.Equal(t, 2, fc.waits)

	// stale entry removed out-of-band, default policy succeeds
	require.NoError(t, os.Remove(path))
	assert.True(t, p.Create(context.Background(), DefaultSleep, DefaultRetries))
	defer func() { _ = p.Close() }()
}

func TestCreateFailsWhileLockHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")

	p1 := New(testLogger(), WithPath(path))
	require.True(t, p1.Create(context.Background(), DefaultSleep, DefaultRetries))
	defer func() { _ = p1.Close() }()

	// a second handle on the same path sees the held lock, exactly as a
	// second process would
	p2 := New(testLogger(), WithPath(path))
	assert.True(t, p2.Running())
	assert.False(t, p2.Create(context.Background(), DefaultSleep, DefaultRetries))
}

func TestCreateStopsOnCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pid")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(testLogger(), WithPath(path))

	start := time.Now()
	assert.False(t, p.Create(ctx, time.Minute, 3))
	assert.Less(t, time.Since(start), time.Second)
}
