package sable

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterStoreClient provides a common interface to interact with a client
// backed by SSM Parameter Store. Implementations must handle retrying and
// backoff.
type ParameterStoreClient interface {
	// GetParameter gets a single parameter by name.
	GetParameter(ctx context.Context, in *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
	// GetParameters gets multiple parameters by name. Names that do not
	// exist are reported as invalid parameters rather than as an error.
	GetParameters(ctx context.Context, in *ssm.GetParametersInput) (*ssm.GetParametersOutput, error)
	// PutParameter creates or updates a parameter.
	PutParameter(ctx context.Context, in *ssm.PutParameterInput) (*ssm.PutParameterOutput, error)
	// DeleteParameter deletes an existing parameter.
	DeleteParameter(ctx context.Context, in *ssm.DeleteParameterInput) (*ssm.DeleteParameterOutput, error)
	// Close closes the client and cleans up its resources. Implementations
	// should ensure that this is idempotent.
	Close(ctx context.Context) error
}
