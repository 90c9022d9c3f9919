package core

import "errors"

// Error codes surfaced to clients on protocol errors.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeInvalidMessage = "invalid_message"
)

var (
	// ErrDuplicateConn means a connection id was registered twice. The
	// transport assigns ids, so this is programmer-error-class; the new
	// registration wins and the conflict is logged.
	ErrDuplicateConn = errors.New("duplicate connection")
	// ErrUnknownConn means no identity is registered for a connection id.
	ErrUnknownConn = errors.New("unknown connection")
	// ErrUserOffline means no live connection exists for a user identity.
	// Relay and broadcast treat this as a race, not a failure.
	ErrUserOffline = errors.New("user offline")
	// ErrAuthUnavailable means the friend collaborator could not answer.
	// Callers must treat it as a denial, never an approval.
	ErrAuthUnavailable = errors.New("authorization unavailable")
)

// CoreError wraps a code and human-readable message for delivery to clients.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}
