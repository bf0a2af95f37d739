package ui

// Package ui contains the Fyne-based user interface: a full-screen pager of
// looping clip cards. Pointer, touch, wheel and key input is routed through
// a gesture arbiter per card into the feed, overlay and aspect controllers,
// and playback state arrives from the bridge via fyne.Do. All UI strings
// are localized via Localization.
