//go:build darwin

package storage

import (
	"context"
	"os/exec"

	"camdir/internal/domain"
	"camdir/internal/logging"
)

type darwinVolumes struct {
	run    func(ctx context.Context) ([]byte, error)
	logger logging.Logger
}

// NewPlatformVolumes returns the removable volume source for this platform.
func NewPlatformVolumes(roots []string, logger logging.Logger) VolumeSource {
	return &darwinVolumes{
		run: func(ctx context.Context) ([]byte, error) {
			return exec.CommandContext(ctx, "diskutil", "list", "-plist", "external").Output()
		},
		logger: logger,
	}
}

func (v *darwinVolumes) Volumes(ctx context.Context) ([]domain.Device, error) {
	output, err := v.run(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := parseDiskutil(output)
	if err != nil {
		return nil, err
	}
	v.logger.Verbosef("diskutil reported %d external volumes", len(devices))
	return devices, nil
}
