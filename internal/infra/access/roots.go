package access

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// DefaultRoots returns the directories removable volumes get mounted under on
// this platform.
func DefaultRoots() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/Volumes"}
	case "linux":
		name := os.Getenv("USER")
		if u, err := user.Current(); err == nil {
			name = u.Username
		}
		roots := []string{"/media", "/mnt"}
		if name != "" {
			roots = append([]string{
				filepath.Join("/media", name),
				filepath.Join("/run/media", name),
			}, roots...)
		}
		return roots
	default:
		return nil
	}
}

// MediaRoots grants access when every existing mount root can be read.
type MediaRoots struct {
	Fs    afero.Fs
	Roots []string
}

func (m MediaRoots) RequestAccess(ctx context.Context) (bool, error) {
	for _, root := range m.Roots {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		dir, err := m.Fs.Open(root)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				continue
			}
			if errors.Is(err, iofs.ErrPermission) {
				return false, nil
			}
			return false, err
		}
		_, err = dir.Readdirnames(1)
		dir.Close()
		if err != nil && errors.Is(err, iofs.ErrPermission) {
			return false, nil
		}
	}
	return true, nil
}
