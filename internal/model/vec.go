package model

import "math"

// Vec is a 2D translation in device-independent pixels
type Vec struct {
	DX float32
	DY float32
}

// Zero is the neutral offset
var Zero = Vec{}

// IsZero reports whether both components are zero
func (v Vec) IsZero() bool {
	return v.DX == 0 && v.DY == 0
}

// Length returns the euclidean length of v
func (v Vec) Length() float32 {
	return float32(math.Hypot(float64(v.DX), float64(v.DY)))
}

// Abs returns the absolute values of both components
func (v Vec) Abs() (float32, float32) {
	return float32(math.Abs(float64(v.DX))), float32(math.Abs(float64(v.DY)))
}
