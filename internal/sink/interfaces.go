// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

// Package sink abstracts the destination that decoded configuration entries
// are written to. Production code writes to the process environment table;
// tests substitute an in-memory sink.
package sink

// Sink receives decoded configuration entries. Values are only ever set,
// never unset: an entry that disappears from the watched node keeps its last
// applied value until the process exits.
type Sink interface {
	// Set stores value under key. Implementations must be safe for use from
	// a single writer; the sync client never writes from more than one
	// goroutine at a time.
	Set(key, value string) error
}
