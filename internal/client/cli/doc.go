// Package cli provides the interactive Conciencia command-line client.
//
// NewApp wires configuration, the local SQLite state, the gRPC client and the
// services; App.Run restores a saved session, starts a background
// connectivity watcher and serves a REPL until the user exits. Commands
// cover journaling (add, list, intentions, state changes, notes), the daily
// timeline and its empty periods, insights, export and backup, and import of
// mentor documents. The mentor suggestion is kept locally and highlighted
// in entry lists.
package cli
