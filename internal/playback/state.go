package playback

import (
	"fmt"

	"github.com/ytget/eizo/internal/model"
)

// Handle identifies one surface lifetime. A slot that is hidden and shown
// again gets a new handle, so late events from the old surface are dropped.
type Handle string

// EventKind distinguishes events coming up from a runner
type EventKind int

const (
	EventTimeUpdate EventKind = iota
	EventStatus
)

// String returns the event kind name
func (k EventKind) String() string {
	switch k {
	case EventTimeUpdate:
		return "timeUpdate"
	case EventStatus:
		return "status"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is sent from a runner to the UI thread
type Event struct {
	Handle Handle
	Kind   EventKind
	Time   float64
	Status model.SurfaceStatus
	Err    error
}

// State is the playback state of one visible slot
type State struct {
	Handle      Handle
	Slot        int
	Clip        model.Clip
	CurrentTime float64 // written only by time events
	Aspect      model.AspectMode
	Paused      bool
	Visible     bool
	Status      model.SurfaceStatus
	LastError   string
}

// Progress returns the loop window progress in [0, 1]
func (s State) Progress() float64 {
	return s.Clip.Progress(s.CurrentTime)
}

// Caption returns the caption for the current time
func (s State) Caption() (model.Caption, bool) {
	return s.Clip.CaptionAt(s.CurrentTime)
}
