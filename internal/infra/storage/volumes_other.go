//go:build !linux && !darwin

package storage

import (
	"context"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
	"camdir/internal/logging"
)

type unsupportedVolumes struct{}

// NewPlatformVolumes returns the removable volume source for this platform.
func NewPlatformVolumes(roots []string, logger logging.Logger) VolumeSource {
	return unsupportedVolumes{}
}

func (unsupportedVolumes) Volumes(ctx context.Context) ([]domain.Device, error) {
	return nil, appErrors.New(appErrors.NotSupported, "list volumes", "", "no removable volume support")
}
