package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camdir/internal/infra/fs"
	"camdir/internal/logging"
)

func osStore() fs.Store {
	return fs.Store{Fs: afero.NewOsFs()}
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

func TestBrowserReportsMountedCameras(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "LEICA", "DCIM", "100LEICA"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "USB"), 0o755))

	b := NewBrowser(osStore(), []string{root, filepath.Join(root, "missing")}, logging.Discard())
	require.NoError(t, b.Start())
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	device, err := b.FirstDevice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "LEICA", device.Name)
	assert.Equal(t, filepath.Join(root, "LEICA"), device.MountPoint)

	ev := waitEvent(t, b.Events())
	assert.Equal(t, DeviceAdded, ev.Type)
}

func TestBrowserReportsArrivalAndRemoval(t *testing.T) {
	root := t.TempDir()
	b := NewBrowser(osStore(), []string{root}, logging.Discard())
	b.Settle = 2 * time.Second
	require.NoError(t, b.Start())
	defer b.Close()

	cam := filepath.Join(root, "CAMERA")
	require.NoError(t, os.MkdirAll(filepath.Join(cam, "DCIM"), 0o755))

	ev := waitEvent(t, b.Events())
	assert.Equal(t, DeviceAdded, ev.Type)
	assert.Equal(t, cam, ev.Device.MountPoint)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	first, err := b.FirstDevice(ctx)
	require.NoError(t, err)
	assert.Equal(t, cam, first.MountPoint)

	require.NoError(t, os.RemoveAll(cam))
	ev = waitEvent(t, b.Events())
	assert.Equal(t, DeviceRemoved, ev.Type)
	assert.Equal(t, cam, ev.Device.MountPoint)
}

func TestBrowserFirstDeviceTimesOut(t *testing.T) {
	b := NewBrowser(osStore(), []string{t.TempDir()}, logging.Discard())
	require.NoError(t, b.Start())
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := b.FirstDevice(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBrowserCloseIsIdempotent(t *testing.T) {
	b := NewBrowser(osStore(), nil, logging.Discard())
	require.NoError(t, b.Start())
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, open := <-b.Events()
	assert.False(t, open)
}
