package capture

import (
	"context"
	"path/filepath"
	"sort"

	"camdir/internal/domain"
	"camdir/internal/infra/fs"
	"camdir/internal/logging"
)

type CameraIdentifier interface {
	CameraModel(ctx context.Context, path string) (string, error)
}

// Folder is one DCIM subfolder and its entries, sorted by name.
type Folder struct {
	Name    string
	Path    string
	Entries []string
}

// Catalog is the content of an opened camera.
type Catalog struct {
	Device  domain.Device
	Folders []Folder
}

// FirstEntry returns the URL of the first item in the catalog.
func (c Catalog) FirstEntry() (domain.DirectoryURL, bool) {
	for _, f := range c.Folders {
		if len(f.Entries) > 0 {
			return domain.FileURL(f.Path).Join(f.Entries[0]), true
		}
	}
	return domain.DirectoryURL{}, false
}

func (c Catalog) Len() int {
	n := 0
	for _, f := range c.Folders {
		n += len(f.Entries)
	}
	return n
}

// OpenSession reads the DCIM catalog of device. When camera is set, the
// first JPEG names the device after the camera model that wrote it.
func OpenSession(ctx context.Context, store fs.Store, camera CameraIdentifier, device domain.Device, logger logging.Logger) (Catalog, error) {
	stop := logger.Measure("Opening session on " + device.MountPoint)
	defer stop()

	dcim := filepath.Join(device.MountPoint, "DCIM")
	names, err := store.Subdirs(dcim)
	if err != nil {
		return Catalog{}, err
	}

	catalog := Catalog{Device: device}
	for _, name := range names {
		dir := filepath.Join(dcim, name)
		entries, err := store.ReadDirNames(ctx, dir)
		if err != nil {
			return Catalog{}, err
		}
		sort.Strings(entries)
		catalog.Folders = append(catalog.Folders, Folder{Name: name, Path: dir, Entries: entries})
		logger.Verbosef("contents %s: %d items", name, len(entries))
	}

	if camera != nil {
		if model := identify(ctx, camera, catalog, logger); model != "" {
			catalog.Device.Name = model
		}
	}
	logger.Verbosef("session opened on %s with %d items", catalog.Device.DisplayName(), catalog.Len())
	return catalog, nil
}

func identify(ctx context.Context, camera CameraIdentifier, catalog Catalog, logger logging.Logger) string {
	for _, f := range catalog.Folders {
		for _, name := range f.Entries {
			if !domain.IsJpegExtension(filepath.Ext(name)) {
				continue
			}
			model, err := camera.CameraModel(ctx, filepath.Join(f.Path, name))
			if err != nil {
				logger.Verbosef("no camera model in %s: %v", name, err)
				return ""
			}
			return model
		}
	}
	return ""
}
