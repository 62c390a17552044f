//go:build linux

package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"camdir/internal/domain"
	"camdir/internal/logging"
)

var partitionSuffix = regexp.MustCompile(`^((?:mmcblk|nvme\d+n|loop)\d+)p\d+$`)

type linuxVolumes struct {
	sysRoot    string
	devRoot    string
	roots      []string
	partitions func(ctx context.Context) ([]disk.PartitionStat, error)
	logger     logging.Logger
}

// NewPlatformVolumes returns the removable volume source for this platform.
func NewPlatformVolumes(roots []string, logger logging.Logger) VolumeSource {
	return &linuxVolumes{
		sysRoot: "/sys",
		devRoot: "/dev",
		roots:   roots,
		partitions: func(ctx context.Context) ([]disk.PartitionStat, error) {
			return disk.PartitionsWithContext(ctx, false)
		},
		logger: logger,
	}
}

func (v *linuxVolumes) Volumes(ctx context.Context) ([]domain.Device, error) {
	partitions, err := v.partitions(ctx)
	if err != nil {
		return nil, platformError("list volumes", err)
	}

	var devices []domain.Device
	for _, p := range partitions {
		if !strings.HasPrefix(p.Device, "/dev/") || p.Mountpoint == "" {
			continue
		}
		name := filepath.Base(p.Device)
		if !v.isRemovable(name) && !underAny(p.Mountpoint, v.roots) {
			continue
		}
		devices = append(devices, domain.Device{
			Name:       v.label(p.Device, name),
			ID:         v.linkName("disk/by-uuid", p.Device),
			MountPoint: p.Mountpoint,
			DevicePath: p.Device,
			Kind:       domain.KindStorage,
		})
	}
	v.logger.Verbosef("Found %d removable volumes out of %d partitions", len(devices), len(partitions))
	return devices, nil
}

func (v *linuxVolumes) isRemovable(name string) bool {
	data, err := os.ReadFile(filepath.Join(v.sysRoot, "block", parentDevice(name), "removable"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// linkName finds the entry in /dev/<dir> that links to devPath.
func (v *linuxVolumes) linkName(dir, devPath string) string {
	linkDir := filepath.Join(v.devRoot, dir)
	entries, err := os.ReadDir(linkDir)
	if err != nil {
		return ""
	}
	want := filepath.Base(devPath)
	for _, entry := range entries {
		target, err := os.Readlink(filepath.Join(linkDir, entry.Name()))
		if err != nil {
			continue
		}
		if filepath.Base(target) == want {
			return entry.Name()
		}
	}
	return ""
}

func (v *linuxVolumes) label(devPath, name string) string {
	if label := v.linkName("disk/by-label", devPath); label != "" {
		return label
	}
	base := filepath.Join(v.sysRoot, "block", parentDevice(name), "device")
	if data, err := os.ReadFile(filepath.Join(base, "model")); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// parentDevice maps a partition name to its whole-disk name:
// sdb1 -> sdb, mmcblk0p1 -> mmcblk0.
func parentDevice(name string) string {
	if m := partitionSuffix.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if strings.HasPrefix(name, "mmcblk") || strings.HasPrefix(name, "nvme") || strings.HasPrefix(name, "loop") {
		return name
	}
	return strings.TrimRight(name, "0123456789")
}
