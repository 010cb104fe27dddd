// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package models

import "time"

// UpdateSummary describes one successful parse-and-apply pass over the
// watched node's payload. It is handed to the caller's OnUpdate hook after
// every pass that completes without error.
type UpdateSummary struct {
	// Generation is the session generation the payload was read under.
	// Generations increase monotonically; a new generation is minted each
	// time the client rebuilds its session.
	Generation uint64

	// Version is the node's data version as reported by the ensemble at
	// read time.
	Version int32

	// Applied is the number of entries written to the environment sink
	// during this pass.
	Applied int

	// Skipped is the number of comment, blank, and malformed lines ignored
	// during this pass.
	Skipped int

	// Decrypted is the number of applied entries whose values arrived
	// encrypted and were decrypted before the write.
	Decrypted int

	// ReceivedAt is the local time the payload was read.
	ReceivedAt time.Time
}
