package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "TempMonitor.lock")
}

func TestAcquireReleaseRoundTrip(t *testing.T) {
	path := lockPath(t)

	l, err := Acquire(path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("%d\n", os.Getpid()), string(content))

	require.NoError(t, l.Release())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "marker must be gone after release")

	// The path is free again.
	l2, err := Acquire(path)
	require.NoError(t, err)
	require.NoError(t, l2.Release())
}

func TestAcquireContention(t *testing.T) {
	path := lockPath(t)

	l, err := Acquire(path)
	require.NoError(t, err)
	defer l.Release()

	_, err = Acquire(path)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	var cerr *ContentionError
	require.True(t, errors.As(err, &cerr))
	require.False(t, cerr.Stale, "a held lock is not stale")
}

func TestAcquireStaleMarker(t *testing.T) {
	path := lockPath(t)

	// A marker left behind by a dead run: file present, flock free.
	require.NoError(t, os.WriteFile(path, []byte("99999\n"), 0o644))

	_, err := Acquire(path)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAlreadyRunning)

	var cerr *ContentionError
	require.True(t, errors.As(err, &cerr))
	require.True(t, cerr.Stale)
	require.Contains(t, err.Error(), "manually")

	// The stale marker is never cleaned up automatically.
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestReleaseIdempotent(t *testing.T) {
	path := lockPath(t)

	l, err := Acquire(path)
	require.NoError(t, err)

	require.NoError(t, l.Release())
	require.NoError(t, l.Release())
}

func TestAcquireUnwritableDir(t *testing.T) {
	_, err := Acquire(filepath.Join(t.TempDir(), "missing", "t.lock"))
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrAlreadyRunning), "an IO failure is not contention")
}
