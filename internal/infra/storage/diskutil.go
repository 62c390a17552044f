package storage

import (
	"howett.net/plist"

	"camdir/internal/domain"
)

type diskutilPartition struct {
	DeviceIdentifier string `plist:"DeviceIdentifier"`
	VolumeName       string `plist:"VolumeName"`
	VolumeUUID       string `plist:"VolumeUUID"`
	MountPoint       string `plist:"MountPoint"`
}

type diskutilOutput struct {
	AllDisksAndPartitions []struct {
		DeviceIdentifier string              `plist:"DeviceIdentifier"`
		VolumeName       string              `plist:"VolumeName"`
		VolumeUUID       string              `plist:"VolumeUUID"`
		MountPoint       string              `plist:"MountPoint"`
		Partitions       []diskutilPartition `plist:"Partitions"`
	} `plist:"AllDisksAndPartitions"`
}

// parseDiskutil decodes `diskutil list -plist external`. Whole disks without
// a partition table (common on SD cards) carry the volume fields themselves.
func parseDiskutil(data []byte) ([]domain.Device, error) {
	var out diskutilOutput
	if _, err := plist.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	var devices []domain.Device
	for _, disk := range out.AllDisksAndPartitions {
		parts := disk.Partitions
		if len(parts) == 0 && disk.MountPoint != "" {
			parts = []diskutilPartition{{
				DeviceIdentifier: disk.DeviceIdentifier,
				VolumeName:       disk.VolumeName,
				VolumeUUID:       disk.VolumeUUID,
				MountPoint:       disk.MountPoint,
			}}
		}
		for _, p := range parts {
			devices = append(devices, domain.Device{
				Name:       p.VolumeName,
				ID:         p.VolumeUUID,
				MountPoint: p.MountPoint,
				DevicePath: "/dev/" + p.DeviceIdentifier,
				Kind:       domain.KindStorage,
			})
		}
	}
	return devices, nil
}
