package dispatch

import (
	"context"
	"io"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
	"github.com/evergreen-ci/utility"
	"github.com/helia-ci/sable"
	"github.com/pkg/errors"
)

// BasicDispatcher provides a sable.Dispatcher implementation backed by a
// function client. It validates every request before sending and never
// retries - retry policy belongs to the poller.
type BasicDispatcher struct {
	client sable.FunctionClient
}

// NewBasicDispatcher creates a dispatcher backed by the given function
// client.
func NewBasicDispatcher(c sable.FunctionClient) (*BasicDispatcher, error) {
	if c == nil {
		return nil, errors.New("must specify a client")
	}
	return &BasicDispatcher{client: c}, nil
}

// Invoke dispatches the request and returns the request ID assigned by the
// invocation service. A malformed request fails with a
// sable.PayloadTypeError before any network I/O; invocation failures surface
// as a sable.DispatchError carrying the remote code and message.
func (d *BasicDispatcher) Invoke(ctx context.Context, req sable.DispatchRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	payload := req.Payload
	if req.PayloadSource != nil {
		var err error
		payload, err = io.ReadAll(req.PayloadSource)
		if err != nil {
			return "", sable.NewPayloadTypeError(errors.Wrap(err, "reading payload source").Error())
		}
	}

	out, err := d.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   req.Target,
		InvocationType: types.InvocationType(*req.Mode),
		Payload:        payload,
		Qualifier:      req.Qualifier,
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", sable.NewDispatchError(apiErr.ErrorCode(), apiErr.ErrorMessage())
		}
		return "", sable.NewDispatchError("RequestError", err.Error())
	}

	// A synchronous invocation can succeed in transport but fail inside
	// the target.
	if fnErr := utility.FromStringPtr(out.FunctionError); fnErr != "" {
		return "", sable.NewDispatchError(fnErr, string(out.Payload))
	}

	requestID, _ := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata)

	return requestID, nil
}
