package names

import (
	"errors"
	"fmt"
)

// Op names the client operation an Error came from.
type Op string

const (
	OpList   Op = "list"
	OpAdd    Op = "add"
	OpDelete Op = "delete"
	OpHealth Op = "health"
)

// Messages shown to the user when the API gives nothing better.
const (
	msgListFailed     = "Failed to load names from server"
	msgAddFailed      = "Failed to add name"
	msgAddOffline     = "Unable to add name. Please check your connection and try again."
	msgDeleteFailed   = "Failed to delete name"
	msgDeleteOffline  = "Unable to delete name. Please check your connection and try again."
	msgDeleteNotFound = "Name not found or already deleted"
	msgHealthFailed   = "API is not reachable"
)

// Error is returned by every Client call that fails after validation. Its
// message is meant for display; Err carries the underlying cause.
type Error struct {
	Op      Op
	Status  int // HTTP status, zero for transport failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail renders the message together with its cause, for logs.
func (e *Error) Detail() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Message, e.Status, e.Err)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// statusError is the cause recorded for non-2xx responses.
type statusError struct {
	path   string
	status int
}

func (e statusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.path, e.status)
}
