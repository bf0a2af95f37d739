package model

// AspectMode controls how a clip's frame is cropped or fit
type AspectMode int

const (
	// AspectSquare shows the frame in a width x width box (default)
	AspectSquare AspectMode = iota

	// AspectFullBleed fills the whole container height, cropping the sides
	AspectFullBleed

	// AspectOriginal letterboxes the frame at its native 16:9 ratio
	AspectOriginal
)

// String returns the style name sent to the playback surface
func (m AspectMode) String() string {
	switch m {
	case AspectFullBleed:
		return "fullBleed"
	case AspectOriginal:
		return "original"
	default:
		return "square"
	}
}

// ParseAspectMode converts a style name back into an AspectMode.
// Unknown names map to AspectSquare.
func ParseAspectMode(s string) AspectMode {
	switch s {
	case "fullBleed":
		return AspectFullBleed
	case "original":
		return AspectOriginal
	default:
		return AspectSquare
	}
}

// SwipeIntent is the feedback shown while a card is being dragged
type SwipeIntent int

const (
	IntentNone SwipeIntent = iota
	IntentLike
	IntentDislike
)

// String returns the intent name
func (i SwipeIntent) String() string {
	switch i {
	case IntentLike:
		return "like"
	case IntentDislike:
		return "dislike"
	default:
		return "none"
	}
}

// SwipePhase is the state of a slot's swipe state machine
type SwipePhase int

const (
	PhaseIdle SwipePhase = iota
	PhaseDragging
	PhaseCommitting
	PhaseSnapBack
)

// String returns the phase name
func (p SwipePhase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseCommitting:
		return "committing"
	case PhaseSnapBack:
		return "snapBack"
	default:
		return "idle"
	}
}

// InProgress returns true while a swipe owns the slot
func (p SwipePhase) InProgress() bool {
	return p != PhaseIdle
}

// SurfaceStatus represents the load state of a playback surface
type SurfaceStatus string

const (
	// SurfaceLoading means the source is being loaded or retried
	SurfaceLoading SurfaceStatus = "Loading"

	// SurfaceReady means the source loaded and time events are flowing
	SurfaceReady SurfaceStatus = "Ready"

	// SurfaceFailed means every load attempt failed
	SurfaceFailed SurfaceStatus = "Failed"
)

// String returns the string representation of SurfaceStatus
func (s SurfaceStatus) String() string {
	return string(s)
}

// IsFinished returns true once loading is over, successfully or not
func (s SurfaceStatus) IsFinished() bool {
	return s == SurfaceReady || s == SurfaceFailed
}
