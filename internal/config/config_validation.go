// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package config

import "strings"

// validate checks that the final merged [ClientConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *ClientConfig) validate() error {
	if len(cfg.Ensemble.Servers) == 0 || cfg.Ensemble.SessionTimeout <= 0 {
		return ErrInvalidEnsembleConfigs
	}

	if cfg.Ensemble.Username == "" || cfg.Ensemble.Password == "" {
		return ErrInvalidEnsembleConfigs
	}

	if cfg.Watch.Path == "" || !strings.HasPrefix(cfg.Watch.Path, "/") {
		return ErrInvalidWatchConfigs
	}

	if cfg.Watch.DecryptionKey == "" {
		return ErrInvalidWatchConfigs
	}

	if cfg.Retry.InitialDelay <= 0 || cfg.Retry.MaxDelay < cfg.Retry.InitialDelay {
		return ErrInvalidRetryConfigs
	}

	return nil
}
