package sable

import (
	"context"
	"io"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
)

// InvocationMode determines how a dispatch target is invoked.
type InvocationMode string

const (
	// InvocationModeAsync invokes the target asynchronously and returns as
	// soon as the invocation service accepts the request.
	InvocationModeAsync InvocationMode = "Event"
	// InvocationModeSync invokes the target synchronously and waits for
	// the target to finish.
	InvocationModeSync InvocationMode = "RequestResponse"
)

// Validate checks that the invocation mode is a recognized value.
func (m InvocationMode) Validate() error {
	switch m {
	case InvocationModeAsync, InvocationModeSync:
		return nil
	default:
		return NewPayloadTypeError("unrecognized invocation mode '" + string(m) + "'")
	}
}

// DispatchRequest represents a request to invoke a downstream processing
// target. It is transient - constructed and consumed within a single poll
// cycle. Required fields are validated at construction time via Validate, not
// at dispatch time.
type DispatchRequest struct {
	// Target is the identifier of the downstream processing target.
	Target *string
	// Mode is the invocation mode.
	Mode *InvocationMode
	// Payload is the payload bytes to send.
	Payload []byte
	// PayloadSource is a streamable byte source to read the payload from.
	// Exactly one of Payload and PayloadSource must be given.
	PayloadSource io.Reader
	// Qualifier optionally pins the invocation to a particular version or
	// alias of the target.
	Qualifier *string
}

// NewDispatchRequest returns a new uninitialized dispatch request.
func NewDispatchRequest() *DispatchRequest {
	return &DispatchRequest{}
}

// SetTarget sets the identifier of the downstream processing target.
func (r *DispatchRequest) SetTarget(target string) *DispatchRequest {
	r.Target = &target
	return r
}

// SetMode sets the invocation mode.
func (r *DispatchRequest) SetMode(mode InvocationMode) *DispatchRequest {
	r.Mode = &mode
	return r
}

// SetPayload sets the payload bytes to send.
func (r *DispatchRequest) SetPayload(payload []byte) *DispatchRequest {
	r.Payload = payload
	return r
}

// SetPayloadSource sets a streamable byte source to read the payload from.
func (r *DispatchRequest) SetPayloadSource(src io.Reader) *DispatchRequest {
	r.PayloadSource = src
	return r
}

// SetQualifier sets the version qualifier for the target.
func (r *DispatchRequest) SetQualifier(qualifier string) *DispatchRequest {
	r.Qualifier = &qualifier
	return r
}

// Validate checks that all required fields are populated and that the payload
// is given in exactly one supported form. Any failure is a PayloadTypeError,
// surfaced before network I/O is attempted.
func (r *DispatchRequest) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(utility.FromStringPtr(r.Target) == "", "must specify a non-empty target")
	if r.Mode == nil {
		catcher.New("must specify an invocation mode")
	} else {
		catcher.Add(r.Mode.Validate())
	}
	catcher.NewWhen(r.Payload == nil && r.PayloadSource == nil, "must specify a payload as either bytes or a byte source")
	catcher.NewWhen(r.Payload != nil && r.PayloadSource != nil, "cannot specify both payload bytes and a byte source")

	if catcher.HasErrors() {
		return NewPayloadTypeError(catcher.Resolve().Error())
	}

	return nil
}

// Dispatcher invokes a downstream processing target with a payload,
// validating the request shape before sending. Implementations do not retry
// internally - retry policy belongs to the poller's tick granularity.
type Dispatcher interface {
	// Invoke dispatches the request and returns the request ID assigned by
	// the invocation service. A malformed request fails with a
	// PayloadTypeError without attempting network I/O; a transport or
	// remote failure fails with a DispatchError carrying the underlying
	// code.
	Invoke(ctx context.Context, req DispatchRequest) (requestID string, err error)
}
