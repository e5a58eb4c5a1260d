// Package runtime assembles ready-to-run agent runtimes: it resolves
// the caller's model choice to a configured provider client, acquires
// the shared checkpoint store, picks the filesystem backend strategy,
// and hands all three to the agent constructor.
//
// Invariants:
// - Model resolution precedes checkpoint acquisition precedes agent construction.
// - Failures surface immediately; no partial agent is ever returned.
// - The checkpoint store is shared across runtimes and released by Close.
package runtime
