package model

// Package model defines domain data structures used across the app: clips,
// captions, and the small enums that describe swipe, aspect and playback
// state. Values are immutable once loaded and safe to share between the UI
// goroutine and playback runners.
