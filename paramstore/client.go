package paramstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go"
	"github.com/evergreen-ci/utility"
	"github.com/helia-ci/sable/awsutil"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// BasicParameterStoreClient provides a sable.ParameterStoreClient
// implementation that wraps the SSM Parameter Store API. It supports retrying
// requests using exponential backoff and jitter.
type BasicParameterStoreClient struct {
	awsutil.BaseClient
	ssm *ssm.Client
}

// NewBasicParameterStoreClient creates a new client from the given options.
func NewBasicParameterStoreClient(opts awsutil.ClientOptions) (*BasicParameterStoreClient, error) {
	c := &BasicParameterStoreClient{
		BaseClient: awsutil.NewBaseClient(opts),
	}

	return c, nil
}

func (c *BasicParameterStoreClient) setup(ctx context.Context) error {
	if c.ssm != nil {
		return nil
	}

	config, err := c.GetConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "getting config")
	}

	c.ssm = ssm.NewFromConfig(*config)

	return nil
}

// GetParameter gets a single parameter by name.
func (c *BasicParameterStoreClient) GetParameter(ctx context.Context, in *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *ssm.GetParameterOutput
	var err error
	msg := awsutil.MakeAPILogMessage("GetParameter", in)
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.ssm.GetParameter(ctx, in)
			if err != nil {
				var apiErr smithy.APIError
				if errors.As(err, &apiErr) {
					grip.Debug(message.WrapError(apiErr, msg))
					if !isRetryableErrorCode(apiErr.ErrorCode()) {
						return false, err
					}
				}
			}
			return true, err
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// GetParameters gets multiple parameters by name. Names that do not exist
// come back in the output's invalid parameters, not as an error.
func (c *BasicParameterStoreClient) GetParameters(ctx context.Context, in *ssm.GetParametersInput) (*ssm.GetParametersOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *ssm.GetParametersOutput
	var err error
	msg := awsutil.MakeAPILogMessage("GetParameters", in)
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.ssm.GetParameters(ctx, in)
			if err != nil {
				var apiErr smithy.APIError
				if errors.As(err, &apiErr) {
					grip.Debug(message.WrapError(apiErr, msg))
					if !isRetryableErrorCode(apiErr.ErrorCode()) {
						return false, err
					}
				}
			}
			return true, err
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// PutParameter creates or updates a parameter.
func (c *BasicParameterStoreClient) PutParameter(ctx context.Context, in *ssm.PutParameterInput) (*ssm.PutParameterOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *ssm.PutParameterOutput
	var err error
	msg := awsutil.MakeAPILogMessage("PutParameter", in)
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.ssm.PutParameter(ctx, in)
			if err != nil {
				var apiErr smithy.APIError
				if errors.As(err, &apiErr) {
					grip.Debug(message.WrapError(apiErr, msg))
					if !isRetryableErrorCode(apiErr.ErrorCode()) {
						return false, err
					}
				}
			}
			return true, err
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteParameter deletes an existing parameter.
func (c *BasicParameterStoreClient) DeleteParameter(ctx context.Context, in *ssm.DeleteParameterInput) (*ssm.DeleteParameterOutput, error) {
	if err := c.setup(ctx); err != nil {
		return nil, errors.Wrap(err, "setting up client")
	}

	var out *ssm.DeleteParameterOutput
	var err error
	msg := awsutil.MakeAPILogMessage("DeleteParameter", in)
	if err := utility.Retry(ctx,
		func() (bool, error) {
			out, err = c.ssm.DeleteParameter(ctx, in)
			if err != nil {
				var apiErr smithy.APIError
				if errors.As(err, &apiErr) {
					grip.Debug(message.WrapError(apiErr, msg))
					if !isRetryableErrorCode(apiErr.ErrorCode()) {
						return false, err
					}
				}
			}
			return true, err
		}, c.GetRetryOptions()); err != nil {
		return nil, err
	}

	return out, nil
}

// isRetryableErrorCode returns whether the error code from the store is worth
// retrying. Validation and existence errors are deterministic, so retrying
// them just wastes the request budget.
func isRetryableErrorCode(code string) bool {
	switch code {
	case "ValidationException", "ParameterNotFound", "ParameterAlreadyExists", "ParameterLimitExceeded", "InvalidKeyId":
		return false
	default:
		return true
	}
}
