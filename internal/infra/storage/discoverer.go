package storage

import (
	"context"
	"path/filepath"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
	"camdir/internal/infra/fs"
	"camdir/internal/logging"
)

// VolumeSource enumerates attached removable volumes.
type VolumeSource interface {
	Volumes(ctx context.Context) ([]domain.Device, error)
}

type AccessRequester interface {
	RequestAccess(ctx context.Context) (bool, error)
}

// Discoverer is the mass-storage backend: it picks the first mounted
// removable volume and offers the first file under DCIM with one of the
// configured extensions.
type Discoverer struct {
	Supported  func() bool
	Access     AccessRequester
	Volumes    VolumeSource
	Store      fs.Store
	Extensions []string
	Logger     logging.Logger
}

func (d *Discoverer) Discover(ctx context.Context) (domain.Discovery, error) {
	if !d.supported() {
		return domain.Discovery{}, appErrors.New(appErrors.NotSupported, "discover", "", "external storage discovery is not available on this platform")
	}

	granted, err := d.Access.RequestAccess(ctx)
	if err != nil {
		return domain.Discovery{}, appErrors.Wrap(appErrors.IOFailure, "request access", "", err)
	}
	if !granted {
		return domain.Discovery{}, appErrors.New(appErrors.NoPermission, "request access", "", "access to external storage was not granted")
	}

	volumes, err := d.Volumes.Volumes(ctx)
	if err != nil {
		if appErrors.KindOf(err) == appErrors.NotSupported {
			return domain.Discovery{}, err
		}
		return domain.Discovery{}, appErrors.Wrap(appErrors.IOFailure, "list volumes", "", err)
	}

	device, ok := firstMounted(volumes)
	if !ok {
		return domain.Discovery{}, appErrors.New(appErrors.NotFound, "discover", "", "no device")
	}
	d.Logger.Verbosef("Using %s (%d removable volumes attached)", device.MountPoint, len(volumes))

	root := filepath.Join(device.MountPoint, "DCIM")
	if !d.Store.IsDir(root) {
		root = device.MountPoint
	}
	path, found, err := d.Store.FirstFile(ctx, root, func(name string) bool {
		return domain.HasExtension(name, d.Extensions)
	})
	if err != nil {
		return domain.Discovery{}, appErrors.Wrap(appErrors.IOFailure, "scan", root, err)
	}
	if !found {
		return domain.Discovery{}, appErrors.New(appErrors.NotFound, "scan", root, "failed to get url")
	}

	return domain.Discovery{Device: device, URL: domain.FileURL(path)}, nil
}

// List returns every attached removable volume.
func (d *Discoverer) List(ctx context.Context) ([]domain.Device, error) {
	if !d.supported() {
		return nil, appErrors.New(appErrors.NotSupported, "list volumes", "", "external storage discovery is not available on this platform")
	}
	return d.Volumes.Volumes(ctx)
}

func (d *Discoverer) supported() bool {
	if d.Supported != nil {
		return d.Supported()
	}
	return Supported()
}

func firstMounted(volumes []domain.Device) (domain.Device, bool) {
	for _, v := range volumes {
		if v.MountPoint != "" {
			return v, true
		}
	}
	return domain.Device{}, false
}
