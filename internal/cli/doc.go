// Package cli wires the ferro commands: the default dashboard, a
// one-shot snapshot for scripting, config bootstrap, and version info.
//
// The dashboard refuses to start when stdout is not a terminal;
// snapshot is the scripting-safe path and honors --json, which wraps
// output in a stable envelope (see json.go).
package cli
