// Package testevents relays the `go test -json` event stream to a test listener.
//
// Relay decodes test2json records line by line, echoes test output and turns
// test-level run, pass, fail and skip actions into listener notifications.
// Service feeds the relay either from standard input or from a test command it
// launches, and the package provides the `relay` Cobra command.
package testevents
