package dispatch

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/smithy-go"
	"github.com/helia-ci/sable/awsutil"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// BasicFunctionClient provides a sable.FunctionClient implementation that
// wraps the Lambda invocation API. It never retries internally - retry
// semantics for dispatch live at the poller's tick granularity, so a failed
// invocation surfaces immediately.
type BasicFunctionClient struct {
	awsutil.BaseClient
	lambda *lambda.Client
}

// NewBasicFunctionClient creates a new function client from the given
// options.
func NewBasicFunctionClient(opts awsutil.ClientOptions) (*BasicFunctionClient, error) {
	c := &BasicFunctionClient{
		BaseClient: awsutil.NewBaseClient(opts),
	}

	return c, nil
}

func (c *BasicFunctionClient) setup(ctx context.Context) error {
	if c.lambda != nil {
		return nil
	}

	config, err := c.GetConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "getting config")
	}

	c.lambda = lambda.NewFromConfig(*config)

	return nil
}

// Invoke invokes a function with a payload.
func (c *BasicFunctionClient) Invoke(ctx context.Context, in *lambda.InvokeInput) (*lambda.InvokeOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	out, err := c.lambda.Invoke(ctx, in)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			grip.Debug(message.WrapError(apiErr, awsutil.MakeAPILogMessage("Invoke", in)))
		}
		return nil, err
	}

	return out, nil
}
