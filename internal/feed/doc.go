// Package feed holds the ordered clip sequence, the foreground index and
// the per-slot swipe state machine:
//
//	Idle -> Dragging -> Committing -> Idle  (|dx| above the commit threshold)
//	Idle -> Dragging -> SnapBack   -> Idle  (otherwise)
//
// A committed swipe advances the foreground index by one and saturates at
// the last clip. Vertical paging moves the index freely but is refused
// while any swipe is in progress. All methods must be called from the UI
// goroutine.
package feed
