package playback

// Package playback bridges the UI thread and the playback surfaces that
// render clips. Each visible slot owns one surface driven by a dedicated
// runner goroutine: commands (load, seek, style, pause) flow down through
// the runner's queue, time and status events flow up through the bridge's
// event channel. The runner enforces the clip's loop window on its own
// ticker, so looping keeps working while the UI thread is busy.
