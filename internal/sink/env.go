// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package sink

import "os"

// processEnv is the private implementation of [Sink] backed by the process
// environment table.
type processEnv struct{}

// NewProcessEnv returns a [Sink] that writes entries into the process-wide
// environment via os.Setenv. The environment table is shared by the whole
// process; the sync client is its only writer.
func NewProcessEnv() Sink {
	return processEnv{}
}

// Set implements [Sink].
func (processEnv) Set(key, value string) error {
	return os.Setenv(key, value)
}
