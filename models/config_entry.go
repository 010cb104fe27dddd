// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package models

// ConfigEntry is a single decoded KEY=VALUE line from the watched
// configuration node. Entries are transient: produced during a parse pass,
// applied to the environment sink immediately, then discarded. They are
// never retained in memory after the pass completes.
type ConfigEntry struct {
	// Key is the environment variable name, trimmed of surrounding
	// whitespace.
	Key string

	// Value is the environment variable value. For encrypted entries this
	// is the decrypted plaintext, not the wire form.
	Value string

	// Encrypted reports whether the value arrived with the devEnc: marker
	// and was decrypted before being applied.
	Encrypted bool
}
