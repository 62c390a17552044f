package app

import (
	"context"
	"sync"
	"sync/atomic"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
	"camdir/internal/logging"
)

type View int

const (
	ViewEmpty View = iota
	ViewFiles
	ViewError
)

// State is everything the renderers read. Err is empty or one of the
// blocking kinds.
type State struct {
	Err        appErrors.Kind
	Files      domain.FileList
	Loaded     bool
	Device     domain.Device
	Dir        domain.DirectoryURL
	ShowPicker bool
	Notice     string
}

// View picks the single rendering for the state. An error hides the file
// list without discarding it.
func (s State) View() View {
	switch {
	case s.Err != "":
		return ViewError
	case len(s.Files) > 0:
		return ViewFiles
	default:
		return ViewEmpty
	}
}

// Session wires discovery, resolution and listing and owns the presentation
// state. Only one Refresh or OpenFolder runs at a time; overlapping calls get
// an errors.Busy error and leave the state alone.
type Session struct {
	Devices  DeviceAccess
	Resolver Resolver
	Lister   *Lister
	Logger   logging.Logger

	mu       sync.Mutex
	state    State
	inFlight atomic.Bool
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Files = append(domain.FileList(nil), s.state.Files...)
	return st
}

func (s *Session) SetPickerVisible(visible bool) {
	s.update(func(st *State) { st.ShowPicker = visible })
}

// Refresh runs device discovery, resolves the reported URL and lists the
// resulting directory. Blocking failures set State.Err; soft failures only
// leave a notice.
func (s *Session) Refresh(ctx context.Context) (State, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return s.State(), appErrors.New(appErrors.Busy, "refresh", "", "discovery already in flight")
	}
	defer s.inFlight.Store(false)

	stop := s.Logger.Measure("Refresh")
	defer stop()

	discovery, err := s.Devices.Discover(ctx)
	if err != nil {
		return s.fail("discover", err)
	}
	s.Logger.Verbosef("device displayName %s uuid %s", discovery.Device.DisplayName(), discovery.Device.DisplayID())
	s.Logger.Verbosef("url %s", discovery.URL.String())

	res, err := s.Resolver.Resolve(discovery.URL)
	if err != nil {
		return s.fail("resolve", err)
	}
	s.Logger.Verbosef("replacedURL %s", res.Target.String())

	files, err := s.Lister.List(ctx, res.Dir)
	if err != nil {
		return s.fail("list", err)
	}

	s.update(func(st *State) {
		st.Err = ""
		st.Files = files
		st.Loaded = true
		st.Device = discovery.Device
		st.Dir = res.Dir
		st.Notice = ""
	})
	return s.State(), nil
}

// OpenFolder lists a directory chosen outside of device discovery. It never
// clears an existing error and always dismisses the picker.
func (s *Session) OpenFolder(ctx context.Context, dir domain.DirectoryURL) (State, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return s.State(), appErrors.New(appErrors.Busy, "open", dir.String(), "discovery already in flight")
	}
	defer s.inFlight.Store(false)

	s.Logger.Verbosef("selected url %s", dir.String())
	files, err := s.Lister.List(ctx, dir)
	if err != nil {
		s.SetPickerVisible(false)
		return s.fail("list", err)
	}

	s.update(func(st *State) {
		st.Files = files
		st.Loaded = true
		st.Device = domain.Device{}
		st.Dir = dir
		st.ShowPicker = false
		st.Notice = ""
	})
	return s.State(), nil
}

// Pick asks the picker for a folder and lists it. A cancelled picker leaves
// the state unchanged.
func (s *Session) Pick(ctx context.Context, picker Picker) (State, error) {
	dir, ok, err := picker.Pick(ctx)
	if err != nil {
		s.SetPickerVisible(false)
		return s.fail("pick", err)
	}
	if !ok {
		s.Logger.Verbosef("picker cancelled")
		return s.State(), nil
	}
	return s.OpenFolder(ctx, dir)
}

func (s *Session) fail(op string, err error) (State, error) {
	kind := appErrors.KindOf(err)
	if kind.Blocking() {
		s.Logger.Verbosef("%s failed: %v", op, err)
		s.update(func(st *State) {
			st.Err = kind
			st.Notice = ""
		})
		return s.State(), err
	}

	s.Logger.Warnf("%s: %v", op, err)
	s.update(func(st *State) { st.Notice = appErrors.UserMessage(err) })
	return s.State(), err
}

func (s *Session) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}
