// Package mpv implements a playback surface backed by an mpv process
// controlled over its JSON IPC socket. Each surface spawns its own idle
// mpv instance; commands are sent one connection per request.
package mpv
