package access

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaRootsGrantsReadableRoots(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/media/alice/SD", 0o755))

	granted, err := MediaRoots{Fs: mem, Roots: []string{"/media/alice", "/run/media/alice"}}.RequestAccess(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestMediaRootsDeniesUnreadableRoot(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	granted, err := MediaRoots{Fs: afero.NewOsFs(), Roots: []string{locked}}.RequestAccess(context.Background())
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestMediaRootsHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := MediaRoots{Fs: afero.NewMemMapFs(), Roots: []string{"/media"}}.RequestAccess(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
