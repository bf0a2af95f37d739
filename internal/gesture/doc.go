// Package gesture routes raw pointer, pinch and wheel input to exactly one
// recognizer per gesture instance. Priority, highest first: a primed
// caption overlay drag, a horizontal swipe, a pinch, a vertical scroll.
package gesture
