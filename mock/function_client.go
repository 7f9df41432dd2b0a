package mock

import (
	"context"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/middleware"
	"github.com/evergreen-ci/utility"
	"github.com/google/uuid"
)

// FunctionClient provides a mock implementation of a sable.FunctionClient.
// This makes it possible to introspect on inputs to the client and control
// the client's output. By default, a valid invocation is recorded and
// acknowledged with a fresh request ID; fault injection is explicit per
// instance via InvokeError rather than shared mutable state between test
// cases.
type FunctionClient struct {
	InvokeInput  *lambda.InvokeInput
	InvokeOutput *lambda.InvokeOutput
	InvokeError  error

	// Invocations records every input passed to Invoke, in order.
	Invocations []lambda.InvokeInput

	CloseError error
}

// Invoke saves the input options and returns an acknowledgement carrying a
// fake request ID. The mock output can be customized. By default, it
// validates the invocation the way the invocation service does: the function
// name, invocation type, and payload are required, and nothing is recorded
// for an invalid request.
func (c *FunctionClient) Invoke(ctx context.Context, in *lambda.InvokeInput) (*lambda.InvokeOutput, error) {
	c.InvokeInput = in

	if c.InvokeOutput != nil || c.InvokeError != nil {
		return c.InvokeOutput, c.InvokeError
	}

	if utility.FromStringPtr(in.FunctionName) == "" {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "missing function name"}
	}
	if in.InvocationType == "" {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "missing invocation type"}
	}
	if in.Payload == nil {
		return nil, &smithy.GenericAPIError{Code: "InvalidRequestContentException", Message: "missing payload"}
	}

	c.Invocations = append(c.Invocations, *in)

	statusCode := int32(200)
	if in.InvocationType == lambdatypes.InvocationTypeEvent {
		statusCode = 202
	}

	md := middleware.Metadata{}
	awsmiddleware.SetRequestIDMetadata(&md, uuid.NewString())

	return &lambda.InvokeOutput{
		StatusCode:     statusCode,
		ResultMetadata: md,
	}, nil
}

// Close closes the mock client. The mock output can be customized. By
// default, it is a no-op that returns no error.
func (c *FunctionClient) Close(ctx context.Context) error {
	if c.CloseError != nil {
		return c.CloseError
	}
	return nil
}
