// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

// Package ensemble wraps the go-zookeeper client behind the narrow [Conn]
// and [Dialer] surface the sync client needs: dial, digest auth, read with
// watch, close. Session management, server selection, and transparent
// reconnection stay inside the underlying library.
package ensemble

import (
	"fmt"
	"time"

	"github.com/go-zookeeper/zk"

	"github.com/prhmhoseyni/pod-zclient/internal/logger"
)

// DigestScheme is the authentication scheme used with [Conn.AddAuth].
const DigestScheme = "digest"

// DigestAuth builds the credential bytes for digest authentication:
// the username and password joined by a colon.
func DigestAuth(username, password string) []byte {
	return []byte(username + ":" + password)
}

// NewDialer returns a [Dialer] backed by zk.Connect. The underlying client's
// own log lines are forwarded to log at debug level.
func NewDialer(log *logger.Logger) Dialer {
	return func(servers []string, sessionTimeout time.Duration) (Conn, <-chan zk.Event, error) {
		conn, events, err := zk.Connect(servers, sessionTimeout, zk.WithLogger(zkLogger{log}))
		if err != nil {
			return nil, nil, fmt.Errorf("connect to ensemble %v: %w", servers, err)
		}
		return conn, events, nil
	}
}

// zkLogger adapts the zk.Logger interface onto zerolog.
type zkLogger struct {
	log *logger.Logger
}

func (l zkLogger) Printf(format string, args ...interface{}) {
	l.log.Debug().Str("source", "zk").Msgf(format, args...)
}
