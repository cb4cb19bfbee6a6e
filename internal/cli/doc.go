// Package cli provides the interactive Armonia terminal client.
//
// It wires the session manager and the app state store into a simple REPL:
// prompt for credentials, then execute mood, activity, achievement and
// settings commands against the local store.
//
// Key features:
//   - Register / Login / Logout with a persisted session
//   - Mood journal: add, list, delete entries
//   - Activities: list templates, complete, add custom ones
//   - Achievements, stats and settings
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
