package domain

type DeviceKind string

const (
	KindStorage DeviceKind = "storage"
	KindCamera  DeviceKind = "camera"
)

// Device is a removable volume reported by the platform. Name and ID may be
// empty when the platform does not know them.
type Device struct {
	Name       string
	ID         string
	MountPoint string
	DevicePath string
	Kind       DeviceKind
}

func (d Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return "nil"
}

func (d Device) DisplayID() string {
	if d.ID != "" {
		return d.ID
	}
	return "nil"
}

// Discovery is what a device backend hands back: the device it picked and
// the first resource URL it offered.
type Discovery struct {
	Device Device
	URL    DirectoryURL
}

// Resolution is the result of redirecting a device URL to the directory of
// interest. Target keeps the trailing segments; Dir ends at the replaced one.
type Resolution struct {
	Target DirectoryURL
	Dir    DirectoryURL
}

// FileList holds entry names in the order the platform enumerated them.
type FileList []string
