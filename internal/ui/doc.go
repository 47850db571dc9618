// Package ui renders human-readable console output.
//
// ConsoleCommandEventLogger turns shell command lifecycle events, such as a
// launched test command, into short sentences while detailed telemetry keeps
// flowing through the structured logger.
package ui
