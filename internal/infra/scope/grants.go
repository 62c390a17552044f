package scope

import (
	"sync"

	"github.com/spf13/afero"

	"camdir/internal/domain"
	"camdir/internal/logging"
)

// Grants implements scoped access by holding an open handle on the directory
// between Begin and End. A directory that cannot be opened is refused.
type Grants struct {
	Fs     afero.Fs
	Logger logging.Logger

	mu      sync.Mutex
	handles map[string][]afero.File
}

func NewGrants(fs afero.Fs, logger logging.Logger) *Grants {
	return &Grants{Fs: fs, Logger: logger}
}

func (g *Grants) Begin(dir domain.DirectoryURL) bool {
	path := dir.LocalPath()
	f, err := g.Fs.Open(path)
	if err != nil {
		g.Logger.Verbosef("scoped access to %s refused: %v", path, err)
		return false
	}
	info, err := f.Stat()
	if err != nil || !info.IsDir() {
		f.Close()
		g.Logger.Verbosef("scoped access to %s refused: not a directory", path)
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.handles == nil {
		g.handles = make(map[string][]afero.File)
	}
	g.handles[path] = append(g.handles[path], f)
	return true
}

func (g *Grants) End(dir domain.DirectoryURL) {
	path := dir.LocalPath()

	g.mu.Lock()
	stack := g.handles[path]
	if len(stack) == 0 {
		g.mu.Unlock()
		g.Logger.Warnf("scoped access to %s ended without a grant", path)
		return
	}
	f := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(g.handles, path)
	} else {
		g.handles[path] = stack[:len(stack)-1]
	}
	g.mu.Unlock()

	if err := f.Close(); err != nil {
		g.Logger.Verbosef("closing %s: %v", path, err)
	}
}

// Active reports how many grants are currently open.
func (g *Grants) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, stack := range g.handles {
		n += len(stack)
	}
	return n
}
