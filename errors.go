package ecsservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/smithy-go"
)

// AuthError means a session could not be established. Fatal, never retried.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("can't authorize connection: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UnknownServiceStateError means a describe call produced neither a usable
// service nor a definitive absence. The remote reason is passed through verbatim.
type UnknownServiceStateError struct {
	Service string
	Reason  string
}

func (e *UnknownServiceStateError) Error() string {
	return fmt.Sprintf("unknown state for service %q: %s", e.Service, e.Reason)
}

// MissingRequiredFieldError means a create was requested without a field the
// remote API requires.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("to create a service, a %s must be specified", e.Field)
}

// DeleteFailedError means the remote side rejected a delete. The remote
// message is passed through when the cause is an API error.
type DeleteFailedError struct {
	Service string
	Err     error
}

func (e *DeleteFailedError) Error() string {
	var apiErr smithy.APIError
	if errors.As(e.Err, &apiErr) {
		return apiErr.ErrorMessage()
	}
	return e.Err.Error()
}

func (e *DeleteFailedError) Unwrap() error { return e.Err }

// NotFoundPreconditionError means a wait-for-deletion was requested on a
// service that does not exist.
type NotFoundPreconditionError struct {
	Service string
}

func (e *NotFoundPreconditionError) Error() string {
	return fmt.Sprintf("service %q not found", e.Service)
}

// TimeoutError means the deletion poll budget was exhausted.
type TimeoutError struct {
	Attempts int
	Delay    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("service still not deleted after %d tries of %s each", e.Attempts, e.Delay)
}
