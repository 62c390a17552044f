package capture

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"camdir/internal/domain"
	"camdir/internal/infra/fs"
	"camdir/internal/logging"
)

type EventType int

const (
	DeviceAdded EventType = iota
	DeviceRemoved
)

func (t EventType) String() string {
	if t == DeviceAdded {
		return "added"
	}
	return "removed"
}

type Event struct {
	Type   EventType
	Device domain.Device
}

// Browser reports cameras appearing under the mount roots. A volume is a
// camera when it carries a DCIM directory.
type Browser struct {
	Store  fs.Store
	Roots  []string
	Settle time.Duration
	Logger logging.Logger

	watcher *fsnotify.Watcher
	events  chan Event
	done    chan struct{}
	ready   chan struct{}
	wg      sync.WaitGroup

	mu        sync.Mutex
	known     map[string]domain.Device
	roots     map[string]bool
	first     domain.Device
	readyOnce sync.Once
	closeOnce sync.Once
}

const settleSteps = 10

func NewBrowser(store fs.Store, roots []string, logger logging.Logger) *Browser {
	return &Browser{Store: store, Roots: roots, Settle: 2 * time.Second, Logger: logger}
}

// Start watches the roots and reports the cameras that are already mounted.
func (b *Browser) Start() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	b.watcher = w
	b.events = make(chan Event, 16)
	b.done = make(chan struct{})
	b.ready = make(chan struct{})
	b.known = make(map[string]domain.Device)
	b.roots = make(map[string]bool)

	var watched []string
	for _, root := range b.Roots {
		root = filepath.Clean(root)
		if !b.Store.IsDir(root) {
			continue
		}
		if err := w.Add(root); err != nil {
			b.Logger.Verbosef("cannot watch %s: %v", root, err)
			continue
		}
		b.roots[root] = true
		watched = append(watched, root)
	}
	b.Logger.Verbosef("Browsing %d mount roots", len(watched))

	for _, root := range watched {
		names, err := b.Store.Subdirs(root)
		if err != nil {
			b.Logger.Verbosef("cannot scan %s: %v", root, err)
			continue
		}
		for _, name := range names {
			b.consider(filepath.Join(root, name))
		}
	}

	b.wg.Add(1)
	go b.loop()
	return nil
}

// Events delivers every add/remove after Start. Events are dropped when
// nobody reads them.
func (b *Browser) Events() <-chan Event {
	return b.events
}

// FirstDevice blocks until the first camera has been seen.
func (b *Browser) FirstDevice(ctx context.Context) (domain.Device, error) {
	select {
	case <-b.ready:
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.first, nil
	case <-ctx.Done():
		return domain.Device{}, ctx.Err()
	}
}

func (b *Browser) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.done)
		err = b.watcher.Close()
		b.wg.Wait()
		close(b.events)
	})
	return err
}

func (b *Browser) loop() {
	defer b.wg.Done()
	for {
		select {
		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if !b.roots[filepath.Dir(event.Name)] {
				continue
			}
			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				b.wg.Add(1)
				go b.settle(event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				b.forget(event.Name)
			}

		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			b.Logger.Verbosef("watch error: %v", err)

		case <-b.done:
			return
		}
	}
}

// settle waits for a freshly created mount point to show its DCIM folder.
func (b *Browser) settle(path string) {
	defer b.wg.Done()
	step := b.Settle / settleSteps
	if step <= 0 {
		step = time.Millisecond
	}
	for i := 0; i < settleSteps; i++ {
		if b.consider(path) {
			return
		}
		select {
		case <-b.done:
			return
		case <-time.After(step):
		}
	}
}

func (b *Browser) consider(path string) bool {
	if !b.Store.IsDir(filepath.Join(path, "DCIM")) {
		return false
	}

	b.mu.Lock()
	if _, seen := b.known[path]; seen {
		b.mu.Unlock()
		return true
	}
	device := domain.Device{
		Name:       filepath.Base(path),
		MountPoint: path,
		Kind:       domain.KindCamera,
	}
	b.known[path] = device
	b.mu.Unlock()

	b.Logger.Verbosef("device added %s", path)
	b.readyOnce.Do(func() {
		b.mu.Lock()
		b.first = device
		b.mu.Unlock()
		close(b.ready)
	})
	b.emit(Event{Type: DeviceAdded, Device: device})
	return true
}

func (b *Browser) forget(path string) {
	b.mu.Lock()
	device, seen := b.known[path]
	delete(b.known, path)
	b.mu.Unlock()
	if !seen {
		return
	}
	b.Logger.Verbosef("device removed %s", path)
	b.emit(Event{Type: DeviceRemoved, Device: device})
}

func (b *Browser) emit(event Event) {
	select {
	case b.events <- event:
	default:
		b.Logger.Verbosef("dropping %s event for %s", event.Type, event.Device.MountPoint)
	}
}
