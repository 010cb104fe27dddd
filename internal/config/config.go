// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for pod-zclient.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type ClientConfig struct {
	// Ensemble holds the coordination-service connection settings: server
	// addresses, digest credentials, and the session timeout.
	Ensemble Ensemble `envPrefix:"ENSEMBLE_"`

	// Watch holds the watched node path and the key used to decrypt marked
	// values.
	Watch Watch `envPrefix:"WATCH_"`

	// Retry holds the reconnection policy applied when the session expires
	// or an operation fails.
	Retry Retry `envPrefix:"RETRY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged under the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Ensemble holds connection settings for the coordination-service ensemble.
type Ensemble struct {
	// Servers is the list of ensemble server addresses in "host:port"
	// format. At least one address is required.
	// Env: ENSEMBLE_SERVERS (comma-separated)
	Servers []string `env:"SERVERS" envSeparator:","`

	// Username is the digest-authentication username submitted right after
	// the session is established.
	// Env: ENSEMBLE_USERNAME
	Username string `env:"USERNAME"`

	// Password is the digest-authentication password. Must be kept
	// confidential.
	// Env: ENSEMBLE_PASSWORD
	Password string `env:"PASSWORD"`

	// SessionTimeout is the session timeout negotiated with the ensemble.
	// Inactivity beyond this duration expires the session, forcing a full
	// rebuild.
	// Env: ENSEMBLE_SESSION_TIMEOUT
	SessionTimeout time.Duration `env:"SESSION_TIMEOUT"`
}

// Watch holds settings for the watched configuration node.
type Watch struct {
	// Path is the absolute path of the configuration node to watch
	// (e.g. "/config/my-service/env").
	// Env: WATCH_PATH
	Path string `env:"PATH"`

	// DecryptionKey is the hex-encoded 256-bit key used to decrypt values
	// carrying the devEnc: marker. Must be kept confidential.
	// Env: WATCH_DECRYPTION_KEY
	DecryptionKey string `env:"DECRYPTION_KEY"`
}

// Retry holds the reconnection policy settings.
type Retry struct {
	// InitialDelay is the first backoff delay after a failure; subsequent
	// delays grow exponentially (e.g. "500ms").
	// Env: RETRY_INITIAL_DELAY
	InitialDelay time.Duration `env:"INITIAL_DELAY"`

	// MaxDelay caps the exponential backoff (e.g. "30s").
	// Env: RETRY_MAX_DELAY
	MaxDelay time.Duration `env:"MAX_DELAY"`

	// Jitter is the random spread added to every delay to avoid reconnect
	// stampedes against a recovering ensemble (e.g. "100ms").
	// Env: RETRY_JITTER
	Jitter time.Duration `env:"JITTER"`

	// MaxAttempts bounds the number of consecutive failed cycles before
	// the client gives up. Zero means retry indefinitely.
	// Env: RETRY_MAX_ATTEMPTS
	MaxAttempts uint64 `env:"MAX_ATTEMPTS"`
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources in the following priority order (earlier sources win
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig() (*ClientConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaults returns the built-in fallback configuration merged in last, so it
// only fills fields no other source provided.
func defaults() *ClientConfig {
	return &ClientConfig{
		Ensemble: Ensemble{
			SessionTimeout: 30 * time.Second,
		},
		Retry: Retry{
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     30 * time.Second,
			Jitter:       100 * time.Millisecond,
			MaxAttempts:  0, // retry indefinitely
		},
	}
}
