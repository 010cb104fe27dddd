package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidEnsembleConfigs indicates invalid ensemble connection
	// settings (for example, no server addresses or missing credentials).
	ErrInvalidEnsembleConfigs = errors.New("invalid ensemble configuration")
	// ErrInvalidWatchConfigs indicates invalid watched-node settings
	// (for example, a relative node path or a missing decryption key).
	ErrInvalidWatchConfigs = errors.New("invalid watch configuration")
	// ErrInvalidRetryConfigs indicates an inconsistent reconnection policy
	// (for example, a zero initial delay or a cap below the initial delay).
	ErrInvalidRetryConfigs = errors.New("invalid retry configuration")
)
