package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// errStop ends a walk early once a match has been found.
var errStop = errors.New("stop walk")

// Store reads directories through an afero filesystem so the same code runs
// against the OS and against in-memory trees in tests.
type Store struct {
	Fs afero.Fs
}

func NewOSStore() Store {
	return Store{Fs: afero.NewOsFs()}
}

// ReadDirNames returns entry names in the order the filesystem reports them.
func (s Store) ReadDirNames(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := s.Fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	return dir.Readdirnames(-1)
}

func (s Store) IsDir(path string) bool {
	ok, err := afero.IsDir(s.Fs, path)
	return err == nil && ok
}

// FirstFile walks root in lexical order and returns the first regular file
// accepted by match. found is false when nothing matched.
func (s Store) FirstFile(ctx context.Context, root string, match func(name string) bool) (path string, found bool, err error) {
	walkErr := afero.Walk(s.Fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			if errors.Is(err, iofs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		if match(info.Name()) {
			path = p
			found = true
			return errStop
		}
		return nil
	})
	if walkErr != nil && !errors.Is(walkErr, errStop) {
		return "", false, walkErr
	}
	return path, found, nil
}

// Subdirs lists the directories directly under root, sorted by name.
func (s Store) Subdirs(root string) ([]string, error) {
	infos, err := afero.ReadDir(s.Fs, root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, info := range infos {
		if info.IsDir() {
			dirs = append(dirs, info.Name())
		}
	}
	return dirs, nil
}
