package sable

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// FunctionClient provides a common interface to interact with a client backed
// by the Lambda function invocation API. Implementations do not retry failed
// invocations; retry semantics live at the poller's tick granularity.
type FunctionClient interface {
	// Invoke invokes a function with a payload.
	Invoke(ctx context.Context, in *lambda.InvokeInput) (*lambda.InvokeOutput, error)
	// Close closes the client and cleans up its resources. Implementations
	// should ensure that this is idempotent.
	Close(ctx context.Context) error
}
