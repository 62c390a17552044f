package capture

import (
	"context"
	"time"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
	"camdir/internal/infra/fs"
	"camdir/internal/logging"
)

type AccessRequester interface {
	RequestAccess(ctx context.Context) (bool, error)
}

// Discoverer is the capture-device backend: it browses for cameras, opens a
// session on the first one and offers the first catalog item.
type Discoverer struct {
	Supported  func() bool
	Access     AccessRequester
	NewBrowser func() *Browser
	Store      fs.Store
	Camera     CameraIdentifier
	Wait       time.Duration
	Logger     logging.Logger
}

func (d *Discoverer) Discover(ctx context.Context) (domain.Discovery, error) {
	supported := d.Supported
	if supported == nil {
		supported = Supported
	}
	if !supported() {
		return domain.Discovery{}, appErrors.New(appErrors.NotSupported, "browse", "", "camera browsing is not available on this platform")
	}

	granted, err := d.Access.RequestAccess(ctx)
	if err != nil || !granted {
		if err != nil {
			d.Logger.Verbosef("authorization failed: %v", err)
		}
		return domain.Discovery{}, appErrors.New(appErrors.NoPermission, "authorize", "", "camera access is not authorized")
	}

	browser := d.NewBrowser()
	if err := browser.Start(); err != nil {
		return domain.Discovery{}, appErrors.Wrap(appErrors.IOFailure, "browse", "", err)
	}
	defer browser.Close()

	waitCtx := ctx
	if d.Wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, d.Wait)
		defer cancel()
	}

	device, err := browser.FirstDevice(waitCtx)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Discovery{}, ctx.Err()
		}
		return domain.Discovery{}, appErrors.Wrap(appErrors.NotFound, "browse", "", err)
	}

	catalog, err := OpenSession(ctx, d.Store, d.Camera, device, d.Logger)
	if err != nil {
		return domain.Discovery{}, appErrors.Wrap(appErrors.IOFailure, "open session", device.MountPoint, err)
	}

	url, ok := catalog.FirstEntry()
	if !ok {
		return domain.Discovery{}, appErrors.New(appErrors.NotFound, "open session", device.MountPoint, "empty catalog")
	}
	return domain.Discovery{Device: catalog.Device, URL: url}, nil
}
