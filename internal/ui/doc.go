// Package ui renders command lifecycle events and command results for people
// watching the console.
//
// Events are described in terms of the repository operation they perform and
// are routed through a zap logger so that detailed telemetry keeps flowing to
// the structured log alongside them.
package ui
