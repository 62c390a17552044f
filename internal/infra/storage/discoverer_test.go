package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
	"camdir/internal/infra/fs"
)

type stubAccess struct {
	granted bool
	err     error
}

func (s stubAccess) RequestAccess(ctx context.Context) (bool, error) { return s.granted, s.err }

type stubVolumes struct {
	devices []domain.Device
	err     error
	calls   int
}

func (s *stubVolumes) Volumes(ctx context.Context) ([]domain.Device, error) {
	s.calls++
	return s.devices, s.err
}

func memStore(t *testing.T, files ...string) fs.Store {
	t.Helper()
	mem := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, mem.MkdirAll(filepath.Dir(f), 0o755))
		require.NoError(t, afero.WriteFile(mem, f, nil, 0o644))
	}
	return fs.Store{Fs: mem}
}

func newDiscoverer(t *testing.T, volumes *stubVolumes, files ...string) *Discoverer {
	return &Discoverer{
		Supported:  func() bool { return true },
		Access:     stubAccess{granted: true},
		Volumes:    volumes,
		Store:      memStore(t, files...),
		Extensions: []string{".mp4"},
	}
}

func TestDiscoverReturnsFirstMatchingFile(t *testing.T) {
	volumes := &stubVolumes{devices: []domain.Device{
		{Name: "unmounted"},
		{Name: "SD", ID: "1234", MountPoint: "/media/u/SD"},
		{Name: "Other", MountPoint: "/media/u/Other"},
	}}
	d := newDiscoverer(t, volumes,
		"/media/u/SD/DCIM/100APPLE/IMG_0001.JPG",
		"/media/u/SD/DCIM/100APPLE/clip.mp4",
		"/media/u/Other/DCIM/100APPLE/other.mp4",
	)

	got, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SD", got.Device.Name)
	assert.Equal(t, "/media/u/SD/DCIM/100APPLE/clip.mp4", got.URL.Path)
}

func TestDiscoverNotSupported(t *testing.T) {
	volumes := &stubVolumes{}
	d := newDiscoverer(t, volumes)
	d.Supported = func() bool { return false }

	_, err := d.Discover(context.Background())
	assert.Equal(t, appErrors.NotSupported, appErrors.KindOf(err))
	assert.Zero(t, volumes.calls)
}

func TestDiscoverNoPermission(t *testing.T) {
	volumes := &stubVolumes{}
	d := newDiscoverer(t, volumes)
	d.Access = stubAccess{granted: false}

	_, err := d.Discover(context.Background())
	assert.Equal(t, appErrors.NoPermission, appErrors.KindOf(err))
	assert.Zero(t, volumes.calls)

	d.Access = stubAccess{err: errors.New("stat failed")}
	_, err = d.Discover(context.Background())
	assert.Equal(t, appErrors.IOFailure, appErrors.KindOf(err))
}

func TestDiscoverSoftFailures(t *testing.T) {
	t.Run("no_device", func(t *testing.T) {
		d := newDiscoverer(t, &stubVolumes{})
		_, err := d.Discover(context.Background())
		assert.Equal(t, appErrors.NotFound, appErrors.KindOf(err))
	})

	t.Run("no_matching_file", func(t *testing.T) {
		volumes := &stubVolumes{devices: []domain.Device{{MountPoint: "/media/u/SD"}}}
		d := newDiscoverer(t, volumes, "/media/u/SD/DCIM/100APPLE/IMG_0001.JPG")
		_, err := d.Discover(context.Background())
		assert.Equal(t, appErrors.NotFound, appErrors.KindOf(err))
	})

	t.Run("volume_source_unsupported", func(t *testing.T) {
		volumes := &stubVolumes{err: appErrors.New(appErrors.NotSupported, "list volumes", "", "x")}
		d := newDiscoverer(t, volumes)
		_, err := d.Discover(context.Background())
		assert.Equal(t, appErrors.NotSupported, appErrors.KindOf(err))
	})
}

func TestDiscoverFallsBackToMountRoot(t *testing.T) {
	volumes := &stubVolumes{devices: []domain.Device{{MountPoint: "/media/u/USB"}}}
	d := newDiscoverer(t, volumes, "/media/u/USB/videos/a.MP4")

	got, err := d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/media/u/USB/videos/a.MP4", got.URL.Path)
}

func TestPlatformError(t *testing.T) {
	assert.NoError(t, platformError("list volumes", nil))
	assert.Equal(t, appErrors.NotSupported, appErrors.KindOf(platformError("list volumes", errors.New("not implemented yet"))))
	assert.Equal(t, appErrors.Internal, appErrors.KindOf(platformError("list volumes", errors.New("permission denied"))))
}

func TestUnderAny(t *testing.T) {
	roots := []string{"/media/u/", "/Volumes"}
	assert.True(t, underAny("/media/u/SD", roots))
	assert.True(t, underAny("/Volumes", roots))
	assert.False(t, underAny("/mediax/SD", roots))
	assert.False(t, underAny("/", nil))
}
