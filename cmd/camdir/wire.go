package main

import (
	"camdir/internal/app"
	"camdir/internal/config"
	"camdir/internal/infra/access"
	"camdir/internal/infra/capture"
	"camdir/internal/infra/exif"
	"camdir/internal/infra/fs"
	"camdir/internal/infra/scope"
	"camdir/internal/infra/storage"
	"camdir/internal/logging"
)

func roots(cfg config.Config) []string {
	if len(cfg.Roots) > 0 {
		return cfg.Roots
	}
	return access.DefaultRoots()
}

func newStorageDiscoverer(cfg config.Config, store fs.Store, logger logging.Logger) *storage.Discoverer {
	mediaRoots := roots(cfg)
	return &storage.Discoverer{
		Supported:  storage.Supported,
		Access:     access.MediaRoots{Fs: store.Fs, Roots: mediaRoots},
		Volumes:    storage.NewPlatformVolumes(mediaRoots, logger),
		Store:      store,
		Extensions: cfg.Extensions,
		Logger:     logger,
	}
}

func newCaptureDiscoverer(cfg config.Config, store fs.Store, logger logging.Logger) *capture.Discoverer {
	mediaRoots := roots(cfg)
	return &capture.Discoverer{
		Supported: capture.Supported,
		Access:    access.MediaRoots{Fs: store.Fs, Roots: mediaRoots},
		NewBrowser: func() *capture.Browser {
			return capture.NewBrowser(store, mediaRoots, logger)
		},
		Store:  store,
		Camera: exif.Reader{Fs: store.Fs},
		Wait:   cfg.CaptureWait,
		Logger: logger,
	}
}

func newDeviceAccess(cfg config.Config, store fs.Store, logger logging.Logger) app.DeviceAccess {
	if cfg.Backend == config.BackendCapture {
		return newCaptureDiscoverer(cfg, store, logger)
	}
	return newStorageDiscoverer(cfg, store, logger)
}

func newSession(cfg config.Config, logger logging.Logger) (*app.Session, error) {
	resolver, err := app.NewResolver(cfg.From, cfg.To)
	if err != nil {
		return nil, err
	}

	store := fs.NewOSStore()
	return &app.Session{
		Devices:  newDeviceAccess(cfg, store, logger),
		Resolver: resolver,
		Lister: &app.Lister{
			Access: scope.NewGrants(store.Fs, logger),
			Reader: store,
			Logger: logger,
		},
		Logger: logger,
	}, nil
}
