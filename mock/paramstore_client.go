package mock

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
	"github.com/evergreen-ci/utility"
)

// StoredParameter is a representation of a parameter kept in the global
// parameter cache.
type StoredParameter struct {
	Name         string
	Value        string
	Version      int64
	Created      time.Time
	LastModified time.Time
}

func exportParameter(p StoredParameter) types.Parameter {
	return types.Parameter{
		Name:             utility.ToStringPtr(p.Name),
		Value:            utility.ToStringPtr(p.Value),
		Type:             types.ParameterTypeString,
		Version:          p.Version,
		LastModifiedDate: utility.ToTimePtr(p.LastModified),
	}
}

// GlobalParameterCache is a global parameter cache that provides a simplified
// in-memory implementation of a parameter store. This can be used indirectly
// with the ParameterStoreClient to access and modify parameters, or used
// directly.
var GlobalParameterCache map[string]StoredParameter

func init() {
	ResetGlobalParameterCache()
}

// ResetGlobalParameterCache resets the global fake parameter cache to an
// initialized but clean state.
func ResetGlobalParameterCache() {
	GlobalParameterCache = map[string]StoredParameter{}
}

// ParameterStoreClient provides a mock implementation of a
// sable.ParameterStoreClient. This makes it possible to introspect on inputs
// to the client and control the client's output. It provides some default
// implementations where possible. By default, it will issue the API calls to
// the fake GlobalParameterCache.
type ParameterStoreClient struct {
	GetParameterInput  *ssm.GetParameterInput
	GetParameterOutput *ssm.GetParameterOutput
	GetParameterError  error

	GetParametersInput  *ssm.GetParametersInput
	GetParametersOutput *ssm.GetParametersOutput
	GetParametersError  error

	PutParameterInput  *ssm.PutParameterInput
	PutParameterOutput *ssm.PutParameterOutput
	PutParameterError  error

	DeleteParameterInput  *ssm.DeleteParameterInput
	DeleteParameterOutput *ssm.DeleteParameterOutput
	DeleteParameterError  error

	CloseError error
}

// GetParameter saves the input options and returns an existing mock
// parameter's value. The mock output can be customized. By default, it will
// return a cached mock parameter if it exists in the global parameter cache.
func (c *ParameterStoreClient) GetParameter(ctx context.Context, in *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
	c.GetParameterInput = in

	if c.GetParameterOutput != nil || c.GetParameterError != nil {
		return c.GetParameterOutput, c.GetParameterError
	}

	if in.Name == nil {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "missing parameter name"}
	}

	name := utility.FromStringPtr(in.Name)
	p, ok := GlobalParameterCache[name]
	if !ok {
		return nil, &types.ParameterNotFound{Message: aws.String("parameter does not exist")}
	}

	param := exportParameter(p)

	return &ssm.GetParameterOutput{
		Parameter: &param,
	}, nil
}

// GetParameters saves the input options and returns the values of all
// requested mock parameters that exist, reporting the rest as invalid
// parameters. The mock output can be customized. By default, it will look up
// cached mock parameters in the global parameter cache.
func (c *ParameterStoreClient) GetParameters(ctx context.Context, in *ssm.GetParametersInput) (*ssm.GetParametersOutput, error) {
	c.GetParametersInput = in

	if c.GetParametersOutput != nil || c.GetParametersError != nil {
		return c.GetParametersOutput, c.GetParametersError
	}

	if len(in.Names) == 0 {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "missing parameter names"}
	}

	out := &ssm.GetParametersOutput{}
	for _, name := range in.Names {
		if p, ok := GlobalParameterCache[name]; ok {
			out.Parameters = append(out.Parameters, exportParameter(p))
		} else {
			out.InvalidParameters = append(out.InvalidParameters, name)
		}
	}

	return out, nil
}

// PutParameter saves the input options and stores a mock parameter. The mock
// output can be customized. By default, it will create or update a cached
// mock parameter in the global parameter cache, mirroring the store's
// overwrite semantics: putting an existing name without the overwrite flag
// fails with a parameter-already-exists error.
func (c *ParameterStoreClient) PutParameter(ctx context.Context, in *ssm.PutParameterInput) (*ssm.PutParameterOutput, error) {
	c.PutParameterInput = in

	if c.PutParameterOutput != nil || c.PutParameterError != nil {
		return c.PutParameterOutput, c.PutParameterError
	}

	if in.Name == nil {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "missing parameter name"}
	}
	if in.Value == nil {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "missing parameter value"}
	}

	name := utility.FromStringPtr(in.Name)
	ts := time.Now()

	existing, ok := GlobalParameterCache[name]
	if ok && !utility.FromBoolPtr(in.Overwrite) {
		return nil, &types.ParameterAlreadyExists{Message: aws.String("parameter already exists")}
	}

	p := StoredParameter{
		Name:         name,
		Value:        utility.FromStringPtr(in.Value),
		Version:      existing.Version + 1,
		Created:      existing.Created,
		LastModified: ts,
	}
	if !ok {
		p.Created = ts
	}
	GlobalParameterCache[name] = p

	return &ssm.PutParameterOutput{Version: p.Version}, nil
}

// DeleteParameter saves the input options and deletes an existing mock
// parameter. The mock output can be customized. By default, it will delete a
// cached mock parameter if it exists in the global parameter cache.
func (c *ParameterStoreClient) DeleteParameter(ctx context.Context, in *ssm.DeleteParameterInput) (*ssm.DeleteParameterOutput, error) {
	c.DeleteParameterInput = in

	if c.DeleteParameterOutput != nil || c.DeleteParameterError != nil {
		return c.DeleteParameterOutput, c.DeleteParameterError
	}

	if in.Name == nil {
		return nil, &smithy.GenericAPIError{Code: "ValidationException", Message: "missing parameter name"}
	}

	name := utility.FromStringPtr(in.Name)
	if _, ok := GlobalParameterCache[name]; !ok {
		return nil, &types.ParameterNotFound{Message: aws.String("parameter does not exist")}
	}
	delete(GlobalParameterCache, name)

	return &ssm.DeleteParameterOutput{}, nil
}

// Close closes the mock client. The mock output can be customized. By
// default, it is a no-op that returns no error.
func (c *ParameterStoreClient) Close(ctx context.Context) error {
	if c.CloseError != nil {
		return c.CloseError
	}
	return nil
}
