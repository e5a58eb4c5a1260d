// Package checkpoint persists agent session state snapshots in a
// SQLite database so conversations can be resumed across restarts.
//
// The database is owned process-wide: Lifecycle hands out a single
// shared Store, serializing first-use initialization so concurrent
// callers never race a second initialization, and Close releases the
// store so a later acquire starts a fresh lifecycle.
package checkpoint
