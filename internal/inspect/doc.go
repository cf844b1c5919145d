// Package inspect keeps three views of a focused syntax node in sync: its
// attributes, its metrics and the chain of scopes enclosing it.
//
// A Tracker owns the focused node and the show-all-attributes mode. Every
// change re-derives the views and publishes them to a Sink. All methods of a
// Tracker must be called from one goroutine; focus changes triggered from
// inside a publication are posted to a Scheduler and run on its next turn.
package inspect
