package hub

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when an operation references an event, or a
// listener within an event, that is not in the registry. Listener is empty
// when the event itself is missing.
type NotFoundError struct {
	Event    string
	Listener string
}

func (e *NotFoundError) Error() string {
	if e.Listener == "" {
		return fmt.Sprintf("event %q not found", e.Event)
	}
	return fmt.Sprintf("listener %q not found on event %q", e.Listener, e.Event)
}

// IsNotFound reports whether err is a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InvalidArgumentError is returned for malformed input, such as an empty
// event name or a nil handler.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

// IsInvalidArgument reports whether err is an *InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}

// DuplicateListenerError is returned when registering a listener ID that
// already exists on the event without WithOverwrite.
type DuplicateListenerError struct {
	Event    string
	Listener string
}

func (e *DuplicateListenerError) Error() string {
	return fmt.Sprintf("listener %q already registered on event %q", e.Listener, e.Event)
}

// IsDuplicateListener reports whether err is a *DuplicateListenerError.
func IsDuplicateListener(err error) bool {
	var dup *DuplicateListenerError
	return errors.As(err, &dup)
}

// HandlerError wraps an error returned by a listener's handler during
// delivery. Unwrap exposes the handler's original error.
type HandlerError struct {
	Event    string
	Listener string
	Err      error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler for listener %q on event %q failed: %v", e.Listener, e.Event, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
