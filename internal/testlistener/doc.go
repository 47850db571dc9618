// Package testlistener reports test lifecycle transitions into a browser console.
//
// ConsoleListener renders a status banner for every transition and evaluates
// it in the top-level frame of the page under test so the marker shows up in
// the browser console and in driver logs next to the actions the test
// performed. StatusNames holds the immutable status-to-name mapping shared by
// the renderer, and Attach bridges the lifecycle of a Go *testing.T.
package testlistener
