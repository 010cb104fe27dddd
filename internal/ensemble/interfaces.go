// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package ensemble

import (
	"time"

	"github.com/go-zookeeper/zk"
)

// Conn is the slice of the coordination-service client the sync client
// actually uses. The production implementation is *zk.Conn; tests inject
// fakes.
type Conn interface {
	// AddAuth submits authentication credentials for the given scheme over
	// the live session.
	AddAuth(scheme string, auth []byte) error

	// GetW reads the node's data and registers a one-shot watch in the same
	// round trip. The returned channel delivers exactly one event when the
	// node changes (or when the watch is invalidated), then closes.
	GetW(path string) ([]byte, *zk.Stat, <-chan zk.Event, error)

	// Close tears the session down. Pending watch channels receive a final
	// event and close.
	Close()
}

// Dialer opens a new session to the ensemble. It returns the connection
// handle and the channel of session-level events (connecting, connected,
// disconnected, expired). Each call produces a fresh, independent session.
type Dialer func(servers []string, sessionTimeout time.Duration) (Conn, <-chan zk.Event, error)
