// Package ui implements the interactive terminal client.
//
// The [Model] is the view binding over the state layer: it reads slice
// snapshots, dispatches playback commands, and reacts to credential changes
// published by the session manager. All mutations of UI state happen inside
// the bubbletea update loop; slice state is refreshed by the player poller
// and periodic fetch commands.
package ui
