package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diskutilSample = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>AllDisksAndPartitions</key>
	<array>
		<dict>
			<key>DeviceIdentifier</key>
			<string>disk4</string>
			<key>Partitions</key>
			<array>
				<dict>
					<key>DeviceIdentifier</key>
					<string>disk4s1</string>
					<key>VolumeName</key>
					<string>LEICA</string>
					<key>VolumeUUID</key>
					<string>0E2B-1F3A</string>
					<key>MountPoint</key>
					<string>/Volumes/LEICA</string>
				</dict>
			</array>
		</dict>
		<dict>
			<key>DeviceIdentifier</key>
			<string>disk5</string>
			<key>VolumeName</key>
			<string>UNTITLED</string>
			<key>MountPoint</key>
			<string>/Volumes/UNTITLED</string>
		</dict>
	</array>
</dict>
</plist>`

func TestParseDiskutil(t *testing.T) {
	devices, err := parseDiskutil([]byte(diskutilSample))
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.Equal(t, "LEICA", devices[0].Name)
	assert.Equal(t, "0E2B-1F3A", devices[0].ID)
	assert.Equal(t, "/Volumes/LEICA", devices[0].MountPoint)
	assert.Equal(t, "/dev/disk4s1", devices[0].DevicePath)

	assert.Equal(t, "UNTITLED", devices[1].Name)
	assert.Empty(t, devices[1].ID)
	assert.Equal(t, "/dev/disk5", devices[1].DevicePath)
}

func TestParseDiskutilRejectsGarbage(t *testing.T) {
	_, err := parseDiskutil([]byte("not a plist"))
	assert.Error(t, err)
}
