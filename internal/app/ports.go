package app

import (
	"context"

	"camdir/internal/domain"
)

// DeviceAccess asks the platform for permission and returns the first usable
// resource on the first attached device. Blocking failures are reported with
// errors.NotSupported or errors.NoPermission; "nothing there" is
// errors.NotFound.
type DeviceAccess interface {
	Discover(ctx context.Context) (domain.Discovery, error)
}

// ScopedAccess brackets reads of a protected directory. End must be called
// once for every Begin that returned true.
type ScopedAccess interface {
	Begin(dir domain.DirectoryURL) bool
	End(dir domain.DirectoryURL)
}

type DirReader interface {
	ReadDirNames(ctx context.Context, path string) ([]string, error)
}

// Picker presents a folder selection surface. ok is false when the user
// cancelled.
type Picker interface {
	Pick(ctx context.Context) (dir domain.DirectoryURL, ok bool, err error)
}
