// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/prhmhoseyni/pod-zclient/internal/crypto"
	"github.com/prhmhoseyni/pod-zclient/internal/ensemble"
	"github.com/prhmhoseyni/pod-zclient/internal/logger"
	"github.com/prhmhoseyni/pod-zclient/internal/sink"
	"github.com/prhmhoseyni/pod-zclient/models"
)

const defaultSessionTimeout = 30 * time.Second

// Config carries everything a [Client] needs to run. It is consumed at
// construction and never mutated afterwards.
type Config struct {
	// Servers is the list of ensemble addresses in "host:port" format.
	Servers []string

	// Username and Password are the digest credentials submitted right
	// after every session is established.
	Username string
	Password string

	// Path is the absolute path of the watched configuration node.
	Path string

	// SessionTimeout is the session timeout negotiated with the ensemble.
	// Defaults to 30s when zero.
	SessionTimeout time.Duration

	// Retry is the reconnection policy applied after a failed cycle.
	Retry RetryPolicy

	// OnUpdate, when non-nil, fires once after every parse pass that
	// completes without error. It runs on the client's event loop, so it
	// must return promptly.
	OnUpdate func(models.UpdateSummary)
}

// Client keeps the process environment synchronized with one configuration
// node. Construct it with [New]; it is driven by a single call to
// [Client.Run].
type Client struct {
	cfg    Config
	dial   ensemble.Dialer
	cipher crypto.ValueCipher
	sink   sink.Sink
	log    *logger.Logger
	id     string

	// running guards the "at most one active run cycle" invariant.
	running atomic.Bool

	// gen is the monotonically increasing session generation. Completions
	// and watch events observed under an older generation are discarded.
	gen atomic.Uint64
}

// New constructs a [Client]. There is no hidden process-wide registry: the
// caller owns the instance and passes it to whatever needs it. Returns
// [ErrInvalidConfig] if the configuration is incomplete or a collaborator
// is nil. A nil log falls back to a no-op logger.
func New(cfg Config, dial ensemble.Dialer, cipher crypto.ValueCipher, envSink sink.Sink, log *logger.Logger) (*Client, error) {
	switch {
	case len(cfg.Servers) == 0:
		return nil, fmt.Errorf("%w: no ensemble servers", ErrInvalidConfig)
	case cfg.Path == "" || !strings.HasPrefix(cfg.Path, "/"):
		return nil, fmt.Errorf("%w: node path must be absolute, got %q", ErrInvalidConfig, cfg.Path)
	case dial == nil:
		return nil, fmt.Errorf("%w: nil dialer", ErrInvalidConfig)
	case cipher == nil:
		return nil, fmt.Errorf("%w: nil value cipher", ErrInvalidConfig)
	case envSink == nil:
		return nil, fmt.Errorf("%w: nil environment sink", ErrInvalidConfig)
	}

	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = defaultSessionTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	id := uuid.NewString()
	child := &logger.Logger{Logger: log.With().
		Str("client_id", id).
		Str("node_path", cfg.Path).
		Logger()}

	return &Client{
		cfg:    cfg,
		dial:   dial,
		cipher: cipher,
		sink:   envSink,
		log:    child,
		id:     id,
	}, nil
}

// ID returns the client's instance identifier, present on every log record
// as "client_id".
func (c *Client) ID() string {
	return c.id
}

// Run drives the whole lifecycle until ctx is cancelled or the retry budget
// is exhausted. At most one cycle is active per client: a Run call that
// finds a cycle already in flight returns nil immediately without doing
// anything.
//
// Internal failures (unreachable ensemble, expired session, failed reads)
// are absorbed: they are logged and the session is rebuilt under the
// configured [RetryPolicy]. The attempt budget and backoff delays count
// consecutive failed cycles only; a cycle that establishes a session and
// completes a fetch starts both over. Run returns nil on cancellation and
// a non-nil error only when an unbroken failure streak exhausts the budget.
func (c *Client) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		c.log.Warn().Msg("sync cycle already in flight, ignoring duplicate run")
		return nil
	}
	defer c.running.Store(false)

	for {
		err := retry.Do(ctx, c.cfg.Retry.backoff(), func(ctx context.Context) error {
			var healthy bool
			err := c.cycle(ctx, &healthy)
			if err == nil || ctx.Err() != nil {
				return err
			}

			c.log.Error().Err(err).Msg("sync cycle failed, scheduling session rebuild")
			if healthy {
				return fmt.Errorf("%w: %s", errHealthyCycle, err)
			}
			return retry.RetryableError(err)
		})
		switch {
		case errors.Is(err, errHealthyCycle):
			// The failed session had done useful work, rebuild immediately
			// under a fresh budget.
			continue
		case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			return fmt.Errorf("sync terminated: %w", err)
		}
	}
}

// cycle runs one full session: dial, await the session, authenticate, fetch
// with a watch, then serve session and watch events until something forces a
// rebuild. The session is always closed before cycle returns, so a retrying
// caller never overlaps two live sessions. healthy is set once the initial
// fetch completes, marking the cycle as one that broke the failure streak.
func (c *Client) cycle(ctx context.Context, healthy *bool) error {
	gen := c.gen.Add(1)
	log := c.log.With().Uint64("session_gen", gen).Logger()

	conn, sessions, err := c.dial(c.cfg.Servers, c.cfg.SessionTimeout)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrConnectionFailed, err)
	}
	defer conn.Close()

	if err = c.awaitSession(ctx, &log, sessions); err != nil {
		return err
	}

	if err = conn.AddAuth(ensemble.DigestScheme, ensemble.DigestAuth(c.cfg.Username, c.cfg.Password)); err != nil {
		return fmt.Errorf("%w: submit digest credentials: %s", ErrConnectionFailed, err)
	}
	log.Info().Msg("session established, credentials submitted")

	watch, err := c.fetch(&log, conn, gen)
	if err != nil {
		return err
	}
	*healthy = true

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down, closing session")
			return ctx.Err()

		case ev, ok := <-sessions:
			if !ok {
				return fmt.Errorf("%w: session event channel closed", ErrConnectionFailed)
			}
			if ev.Err != nil {
				log.Warn().Err(ev.Err).Msg("session error event")
			}

			switch ev.State {
			case zk.StateExpired:
				log.Warn().Msg("session expired, full rebuild required")
				return ErrSessionExpired
			case zk.StateDisconnected:
				// The client library reconnects on its own; nothing to do
				// here beyond recording the outage.
				log.Warn().Msg("disconnected from ensemble, awaiting automatic reconnect")
			case zk.StateHasSession:
				log.Info().Msg("session re-established")
			default:
				log.Debug().Str("state", ev.State.String()).Msg("session state changed")
			}

		case ev, ok := <-watch:
			if !ok {
				// One-shot watch channels close after delivering their
				// event; a closed channel with no event carries no work.
				watch = nil
				continue
			}
			if gen != c.gen.Load() {
				log.Debug().Msg("discarding watch event from a stale session")
				watch = nil
				continue
			}

			switch ev.Type {
			case zk.EventNodeDataChanged:
				log.Info().Msg("config node changed, refetching")
				if watch, err = c.fetch(&log, conn, gen); err != nil {
					return err
				}
			case zk.EventNotWatching:
				return fmt.Errorf("%w: watch invalidated by the server", ErrReadFailed)
			default:
				watch = nil
				log.Warn().
					Str("event", ev.Type.String()).
					Msg("unexpected watch event, watch disarmed until next session rebuild")
			}
		}
	}
}

// awaitSession consumes session events until the ensemble confirms a live
// session. The wait is bounded by the configured session timeout so an
// unreachable ensemble surfaces as a connection failure instead of hanging.
func (c *Client) awaitSession(ctx context.Context, log *zerolog.Logger, sessions <-chan zk.Event) error {
	deadline := time.NewTimer(c.cfg.SessionTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w: no session within %s", ErrConnectionFailed, c.cfg.SessionTimeout)
		case ev, ok := <-sessions:
			if !ok {
				return fmt.Errorf("%w: session event channel closed", ErrConnectionFailed)
			}

			switch ev.State {
			case zk.StateHasSession:
				return nil
			case zk.StateAuthFailed:
				return fmt.Errorf("%w: ensemble rejected credentials", ErrConnectionFailed)
			case zk.StateExpired:
				return ErrSessionExpired
			default:
				log.Debug().Str("state", ev.State.String()).Msg("waiting for session")
			}
		}
	}
}

// fetch reads the watched node and registers a fresh one-shot watch in the
// same round trip. A successful read is parsed and applied; a read completed
// under a stale generation is discarded untouched. Parse failures are logged
// and swallowed here: they abort the rest of the pass but never tear the
// session down.
func (c *Client) fetch(log *zerolog.Logger, conn ensemble.Conn, gen uint64) (<-chan zk.Event, error) {
	data, stat, watch, err := conn.GetW(c.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %s", ErrReadFailed, c.cfg.Path, err)
	}

	if gen != c.gen.Load() {
		log.Debug().Msg("discarding read completed under a stale session")
		return watch, nil
	}

	summary, err := c.apply(data)
	summary.Generation = gen
	if stat != nil {
		summary.Version = stat.Version
	}
	if err != nil {
		// Previously applied values stay in place until the node is fixed.
		log.Error().Err(err).Int("applied", summary.Applied).Msg("config payload rejected")
		return watch, nil
	}

	log.Info().
		Int("applied", summary.Applied).
		Int("skipped", summary.Skipped).
		Int("decrypted", summary.Decrypted).
		Int32("node_version", summary.Version).
		Msg("environment synchronized")

	if c.cfg.OnUpdate != nil {
		c.cfg.OnUpdate(summary)
	}

	return watch, nil
}

// apply decodes the node payload and writes each entry into the environment
// sink as it goes. Payload format: UTF-8 text, CRLF line endings, blank
// lines and #-comments ignored, KEY=VALUE split on the first '=' with both
// sides trimmed. Values carrying the devEnc: marker are decrypted first.
//
// The pass is linear and aborts on the first failed entry; everything
// applied before the failure stays applied.
func (c *Client) apply(raw []byte) (models.UpdateSummary, error) {
	summary := models.UpdateSummary{ReceivedAt: time.Now()}

	for _, line := range strings.Split(string(raw), "\r\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			summary.Skipped++
			continue
		}

		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			summary.Skipped++
			c.log.Warn().Msg("skipping config line without a key=value separator")
			continue
		}

		entry := models.ConfigEntry{Key: key, Value: strings.TrimSpace(value)}
		if strings.HasPrefix(entry.Value, crypto.EncryptedValuePrefix) {
			plain, err := c.cipher.Decrypt(entry.Value)
			if err != nil {
				return summary, fmt.Errorf("%w: decrypt value for %q: %s", ErrParseFailed, entry.Key, err)
			}
			entry.Value = plain
			entry.Encrypted = true
		}

		if err := c.sink.Set(entry.Key, entry.Value); err != nil {
			return summary, fmt.Errorf("%w: set %q: %s", ErrParseFailed, entry.Key, err)
		}
		summary.Applied++
		if entry.Encrypted {
			summary.Decrypted++
		}
	}

	return summary, nil
}
