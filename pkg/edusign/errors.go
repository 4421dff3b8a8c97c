package edusign

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned by NewClient when no API key is set.
	ErrMissingCredential = errors.New("edusign: please provide an Edusign account API key")

	// ErrBlankIdentifier is returned when an operation is called with an
	// empty remote identifier.
	ErrBlankIdentifier = errors.New("edusign: identifier must not be blank")

	// ErrGroupNotFound is returned by operations that need an existing group.
	ErrGroupNotFound = errors.New("edusign: group doesn't exist")

	// ErrCourseNotFound is returned by operations that need an existing course.
	ErrCourseNotFound = errors.New("edusign: course doesn't exist")

	// ErrBadGateway marks a 502 answer from the remote service.
	ErrBadGateway = errors.New("edusign: bad gateway")

	// ErrGatewayTimeout marks a 504 answer from the remote service.
	ErrGatewayTimeout = errors.New("edusign: gateway timeout")

	// ErrMalformedResponse marks a body that is not a JSON envelope.
	ErrMalformedResponse = errors.New("edusign: malformed response")
)

// RemoteError is returned when the remote service answers with an error
// envelope, or when the transport fails before any answer is received. In
// the second case Err holds the transport error.
type RemoteError struct {
	Operation Operation
	Message   string
	Err       error
}

func (e *RemoteError) Error() string {
	if e == nil {
		return "edusign: remote error"
	}
	if e.Operation == "" {
		return fmt.Sprintf("edusign: %s", e.Message)
	}
	return fmt.Sprintf("edusign %s: %s", e.Operation, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// FromEnvelope reports whether the error was produced by an error envelope
// rather than by a transport failure.
func (e *RemoteError) FromEnvelope() bool {
	return e != nil && e.Err == nil
}

// TransportError is returned for gateway failures and unreadable bodies.
// Err is one of ErrBadGateway, ErrGatewayTimeout or ErrMalformedResponse.
type TransportError struct {
	Operation  Operation
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "edusign: transport error"
	}
	if e.Body != "" {
		return fmt.Sprintf("edusign %s: %v (status %d): %s", e.Operation, e.Err, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("edusign %s: %v (status %d)", e.Operation, e.Err, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError wraps input validation failures detected before any
// request is sent.
type ValidationError struct {
	Input string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("edusign: invalid %s: %v", e.Input, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsRemoteMessage reports whether err carries a remote error envelope with
// exactly the given message.
func IsRemoteMessage(err error, message string) bool {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		return false
	}
	return remoteErr.FromEnvelope() && remoteErr.Message == message
}
