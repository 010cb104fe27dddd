// Package syncer keeps process environment variables synchronized with a
// configuration node stored in a coordination-service ensemble.
//
// A [Client] owns exactly one live session at a time. Its lifecycle is:
// dial the ensemble, wait for the session, submit digest credentials, read
// the watched node together with a one-shot watch registration, and then
// loop: every data-change notification triggers one refetch and a fresh
// watch registration; a session expiry tears the session down and rebuilds
// everything under the configured reconnection policy.
//
// Payloads are newline-delimited KEY=VALUE text. Values carrying the devEnc:
// marker are decrypted before being written to the environment sink. A bad
// payload is logged and dropped without touching the session; connection,
// expiry, and read failures trigger a full session rebuild with exponential
// backoff.
package syncer
