package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var errFakeLoad = errors.New("fake load failure")

// fakeSurface replays scripted times and records every call
type fakeSurface struct {
	mu        sync.Mutex
	calls     []string
	times     []float64
	last      float64
	failLoads int
	loaded    bool
	closed    bool
}

func (f *fakeSurface) Load(_ context.Context, sourceID string, start float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("load(%s,%g)", sourceID, start))
	if f.failLoads > 0 {
		f.failLoads--
		return errFakeLoad
	}
	f.loaded = true
	f.last = start
	return nil
}

func (f *fakeSurface) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("seek(%g)", seconds))
	f.last = seconds
	return nil
}

func (f *fakeSurface) SetStyle(mode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "style("+mode+")")
	return nil
}

func (f *fakeSurface) SetPaused(paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("paused(%t)", paused))
	return nil
}

func (f *fakeSurface) CurrentTime() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "time")
	if !f.loaded {
		return 0, ErrNotLoaded
	}
	if len(f.times) > 0 {
		f.last = f.times[0]
		f.times = f.times[1:]
	}
	return f.last, nil
}

func (f *fakeSurface) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "close")
	f.closed = true
	return nil
}

func (f *fakeSurface) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSurface) IsClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeSurface) IsLoaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

// fakeFactory hands out fake surfaces and remembers them in order
type fakeFactory struct {
	mu        sync.Mutex
	surfaces  []*fakeSurface
	failLoads int
}

func (ff *fakeFactory) New(string) (Surface, error) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	s := &fakeSurface{failLoads: ff.failLoads}
	ff.surfaces = append(ff.surfaces, s)
	return s, nil
}

func (ff *fakeFactory) Surfaces() []*fakeSurface {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return append([]*fakeSurface(nil), ff.surfaces...)
}
