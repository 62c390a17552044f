package app

import (
	"context"
	"sync"

	"camdir/internal/domain"
)

type fakeDevices struct {
	discovery domain.Discovery
	err       error
	calls     int
	block     chan struct{}
	started   chan struct{}
}

func (f *fakeDevices) Discover(ctx context.Context) (domain.Discovery, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.discovery, f.err
}

type fakeAccess struct {
	mu     sync.Mutex
	refuse bool
	begins int
	ends   int
}

func (f *fakeAccess) Begin(dir domain.DirectoryURL) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refuse {
		return false
	}
	f.begins++
	return true
}

func (f *fakeAccess) End(dir domain.DirectoryURL) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ends++
}

type fakeReader struct {
	entries map[string][]string
	err     error
	panics  bool
	paths   []string
}

func (f *fakeReader) ReadDirNames(ctx context.Context, path string) ([]string, error) {
	f.paths = append(f.paths, path)
	if f.panics {
		panic("reader exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[path], nil
}

type fakePicker struct {
	dir domain.DirectoryURL
	ok  bool
	err error
}

func (f fakePicker) Pick(ctx context.Context) (domain.DirectoryURL, bool, error) {
	return f.dir, f.ok, f.err
}
