package playback

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSurfaceClosed is returned by a surface used after Close
var ErrSurfaceClosed = errors.New("surface closed")

// ClockSurface is an in-process surface whose playhead advances with wall
// time. It renders nothing and stands in for a real player.
type ClockSurface struct {
	mu       sync.Mutex
	now      func() time.Time
	sourceID string
	loaded   bool
	closed   bool
	paused   bool
	style    string
	position float64
	anchor   time.Time
}

// NewClockSurface creates a clock surface using the system clock
func NewClockSurface() *ClockSurface {
	return NewClockSurfaceWithClock(time.Now)
}

// NewClockSurfaceWithClock creates a clock surface driven by now
func NewClockSurfaceWithClock(now func() time.Time) *ClockSurface {
	return &ClockSurface{now: now}
}

// ClockFactory is a SurfaceFactory producing clock surfaces
func ClockFactory(string) (Surface, error) {
	return NewClockSurface(), nil
}

// Load starts the playhead at start
func (s *ClockSurface) Load(ctx context.Context, sourceID string, start float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sourceID == "" {
		return errors.New("empty source id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSurfaceClosed
	}
	s.sourceID = sourceID
	s.loaded = true
	s.position = start
	s.anchor = s.now()
	return nil
}

// Seek moves the playhead to seconds
func (s *ClockSurface) Seek(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	s.position = seconds
	s.anchor = s.now()
	return nil
}

// SetStyle records the presentation style
func (s *ClockSurface) SetStyle(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	s.style = mode
	return nil
}

// SetPaused freezes or resumes the playhead
func (s *ClockSurface) SetPaused(paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	if paused == s.paused {
		return nil
	}
	s.position = s.positionLocked()
	s.anchor = s.now()
	s.paused = paused
	return nil
}

// CurrentTime returns the playhead position in seconds
func (s *ClockSurface) CurrentTime() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return 0, err
	}
	return s.positionLocked(), nil
}

// Style returns the last applied style
func (s *ClockSurface) Style() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// Close releases the surface
func (s *ClockSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.loaded = false
	return nil
}

func (s *ClockSurface) usableLocked() error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (s *ClockSurface) positionLocked() float64 {
	if s.paused {
		return s.position
	}
	return s.position + s.now().Sub(s.anchor).Seconds()
}
