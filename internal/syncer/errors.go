package syncer

import "errors"

var (
	// ErrInvalidConfig indicates the client was constructed with incomplete
	// configuration or a nil collaborator.
	ErrInvalidConfig = errors.New("invalid sync client configuration")

	// ErrConnectionFailed indicates the ensemble was unreachable, the
	// session did not come up in time, or the credentials were rejected.
	ErrConnectionFailed = errors.New("ensemble connection failed")

	// ErrSessionExpired indicates the ensemble expired the session. An
	// expired session cannot resume; the only recovery is a full rebuild.
	ErrSessionExpired = errors.New("session expired")

	// ErrReadFailed indicates a read of the watched node failed or the
	// watch registration was invalidated by the server.
	ErrReadFailed = errors.New("config node read failed")

	// ErrParseFailed indicates the node's payload could not be fully
	// applied (malformed encrypted value or a sink write failure). Parse
	// failures abort the remainder of the pass and are never retried.
	ErrParseFailed = errors.New("config payload parse failed")
)

// errHealthyCycle marks a cycle that reached a successful fetch before
// failing. It signals the run loop to rebuild under a fresh backoff budget:
// the attempt budget counts consecutive failures only.
var errHealthyCycle = errors.New("session was healthy before failing")
