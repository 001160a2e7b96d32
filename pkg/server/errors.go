package server

import (
	"errors"
	"fmt"

	"github.com/vango-go/contextmenu/pkg/dom"
	"github.com/vango-go/contextmenu/pkg/protocol"
)

// Sentinel errors for common session and server error conditions.
var (
	// ErrSessionClosed is returned when an operation is attempted on a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrHandlerPanic is returned when an event listener panics.
	ErrHandlerPanic = errors.New("server: handler panic")

	// ErrMaxSessionsReached is returned when the maximum number of sessions is reached.
	ErrMaxSessionsReached = errors.New("server: max sessions reached")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("server: invalid config")

	// ErrNoConnection is returned when a frame is written to a session without a connection.
	ErrNoConnection = errors.New("server: no connection")
)

// SessionError is an error that occurred within a session.
type SessionError struct {
	SessionID string
	Op        string
	Err       error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// ErrorCode maps an event handling error to the code sent to the client.
func ErrorCode(err error) protocol.ErrorCode {
	switch {
	case errors.Is(err, protocol.ErrInvalidFrame), errors.Is(err, protocol.ErrUnexpectedKind):
		return protocol.CodeInvalidFrame
	case errors.Is(err, dom.ErrNodeNotFound):
		return protocol.CodeNodeNotFound
	case errors.Is(err, dom.ErrDisabled):
		return protocol.CodeDisabled
	default:
		return protocol.CodeHandlerError
	}
}

// clientMessage is the message sent to the client for err. Listener panics
// are not described.
func clientMessage(err error) string {
	if errors.Is(err, ErrHandlerPanic) {
		return "internal error"
	}
	var se *SessionError
	if errors.As(err, &se) {
		return se.Err.Error()
	}
	return err.Error()
}
