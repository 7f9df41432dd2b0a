package sable

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParameterNotFoundError indicates that a parameter store read referenced a
// name that does not exist. The code and message from the store are carried
// verbatim for diagnostics.
type ParameterNotFoundError struct {
	Name    string
	Code    string
	Message string
}

// NewParameterNotFoundError returns a new error indicating that the named
// parameter does not exist in the parameter store.
func NewParameterNotFoundError(name, code, message string) *ParameterNotFoundError {
	return &ParameterNotFoundError{Name: name, Code: code, Message: message}
}

func (e *ParameterNotFoundError) Error() string {
	return fmt.Sprintf("parameter '%s' not found: %s: %s", e.Name, e.Code, e.Message)
}

// IsParameterNotFoundError returns whether the error is due to a parameter
// not being found in the parameter store.
func IsParameterNotFoundError(err error) bool {
	_, ok := errors.Cause(err).(*ParameterNotFoundError)
	return ok
}

// StateCorruptError indicates that the persisted run state for an integration
// instance is absent or cannot be parsed. The state tracker never fabricates
// a default state, since silently resetting the last fetch timestamp could
// cause duplicate or lost fetches.
type StateCorruptError struct {
	Key    string
	Reason string
}

// NewStateCorruptError returns a new error indicating that the run state
// stored under the given key is unusable.
func NewStateCorruptError(key, reason string) *StateCorruptError {
	return &StateCorruptError{Key: key, Reason: reason}
}

func (e *StateCorruptError) Error() string {
	return fmt.Sprintf("run state '%s' is corrupt: %s", e.Key, e.Reason)
}

// IsStateCorruptError returns whether the error is due to absent or
// unparseable persisted run state.
func IsStateCorruptError(err error) bool {
	_, ok := errors.Cause(err).(*StateCorruptError)
	return ok
}

// UnknownIntegrationError indicates that an integration type is not
// registered in the integration registry.
type UnknownIntegrationError struct {
	Type string
}

// NewUnknownIntegrationError returns a new error indicating that the given
// integration type is not registered.
func NewUnknownIntegrationError(integrationType string) *UnknownIntegrationError {
	return &UnknownIntegrationError{Type: integrationType}
}

func (e *UnknownIntegrationError) Error() string {
	return fmt.Sprintf("integration type '%s' is not registered", e.Type)
}

// IsUnknownIntegrationError returns whether the error is due to an
// unregistered integration type.
func IsUnknownIntegrationError(err error) bool {
	_, ok := errors.Cause(err).(*UnknownIntegrationError)
	return ok
}

// PayloadTypeError indicates that a dispatch request was malformed before any
// network I/O was attempted. This is a programmer error, not a transport
// failure.
type PayloadTypeError struct {
	Reason string
}

// NewPayloadTypeError returns a new error indicating that a dispatch request
// failed validation.
func NewPayloadTypeError(reason string) *PayloadTypeError {
	return &PayloadTypeError{Reason: reason}
}

func (e *PayloadTypeError) Error() string {
	return fmt.Sprintf("invalid dispatch request: %s", e.Reason)
}

// IsPayloadTypeError returns whether the error is due to a malformed dispatch
// request.
func IsPayloadTypeError(err error) bool {
	_, ok := errors.Cause(err).(*PayloadTypeError)
	return ok
}

// DispatchError indicates that a dispatch invocation failed in transport or
// at the remote service. The code and message from the invocation service are
// carried verbatim.
type DispatchError struct {
	Code    string
	Message string
}

// NewDispatchError returns a new error indicating that a dispatch invocation
// failed.
func NewDispatchError(code, message string) *DispatchError {
	return &DispatchError{Code: code, Message: message}
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch failed: %s: %s", e.Code, e.Message)
}

// IsDispatchError returns whether the error is due to a failed dispatch
// invocation.
func IsDispatchError(err error) bool {
	_, ok := errors.Cause(err).(*DispatchError)
	return ok
}
