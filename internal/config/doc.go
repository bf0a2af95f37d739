// Package config holds the persisted user settings, stored in Fyne
// preferences, and the runtime configuration read from the environment.
package config
