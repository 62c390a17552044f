package capture

import "runtime"

// Supported reports whether camera volumes can be watched here. The browser
// only knows the Linux and macOS mount roots.
func Supported() bool {
	return runtime.GOOS == "linux" || runtime.GOOS == "darwin"
}
