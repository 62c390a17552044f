package storage

import (
	"runtime"
	"strings"

	appErrors "camdir/internal/errors"
)

// gopsutil's not-implemented sentinel lives in an internal package, so it is
// matched by message.
const notImplemented = "not implemented yet"

// Supported reports whether removable volumes can be enumerated here.
func Supported() bool {
	switch runtime.GOOS {
	case "linux", "darwin":
		return true
	default:
		return false
	}
}

// platformError marks gopsutil's missing-platform error as NotSupported and
// returns every other error unchanged.
func platformError(op string, err error) error {
	if err != nil && strings.Contains(err.Error(), notImplemented) {
		return appErrors.Wrap(appErrors.NotSupported, op, "", err)
	}
	return err
}

func underAny(path string, roots []string) bool {
	for _, root := range roots {
		root = strings.TrimSuffix(root, "/")
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+"/") {
			return true
		}
	}
	return false
}
