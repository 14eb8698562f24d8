// Package plugin defines the runtime plugin contract, the lifecycle state
// machine shared by every plugin instance, and the name-keyed prototype
// store used to spawn fresh instances of a plugin kind.
package plugin
