// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package syncer

import (
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultInitialDelay = 500 * time.Millisecond
	defaultMaxDelay     = 30 * time.Second
)

// RetryPolicy controls how the client rebuilds its session after a failed
// cycle: exponential backoff starting at InitialDelay, spread by Jitter,
// capped at MaxDelay, for at most MaxAttempts consecutive failures. A cycle
// that reaches a successful fetch breaks the streak and resets both the
// delay and the attempt count.
//
// The zero value is usable and means: 500ms initial delay, no jitter, 30s
// cap, retry indefinitely.
type RetryPolicy struct {
	// InitialDelay is the delay before the first rebuild attempt.
	InitialDelay time.Duration

	// MaxDelay caps the exponential growth of the delay.
	MaxDelay time.Duration

	// Jitter is the random spread added to every delay. Zero disables it.
	Jitter time.Duration

	// MaxAttempts bounds the number of consecutive failed cycles before
	// [Client.Run] gives up and returns the last error. Zero means retry
	// without bound.
	MaxAttempts uint64
}

// backoff materializes the policy as a go-retry backoff.
func (p RetryPolicy) backoff() retry.Backoff {
	initial := p.InitialDelay
	if initial <= 0 {
		initial = defaultInitialDelay
	}

	b := retry.NewExponential(initial)
	if p.Jitter > 0 {
		b = retry.WithJitter(p.Jitter, b)
	}

	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = defaultMaxDelay
	}
	b = retry.WithCappedDuration(maxDelay, b)

	if p.MaxAttempts > 0 {
		b = retry.WithMaxRetries(p.MaxAttempts, b)
	}

	return b
}
