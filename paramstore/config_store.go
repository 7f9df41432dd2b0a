package paramstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/evergreen-ci/utility"
	"github.com/helia-ci/sable"
	"github.com/pkg/errors"
)

// BasicConfigStore provides a sable.ConfigStore implementation backed by SSM
// Parameter Store.
type BasicConfigStore struct {
	client sable.ParameterStoreClient
}

// NewBasicConfigStore creates a config store backed by the given parameter
// store client.
func NewBasicConfigStore(c sable.ParameterStoreClient) (*BasicConfigStore, error) {
	if c == nil {
		return nil, errors.New("must specify a client")
	}
	return &BasicConfigStore{client: c}, nil
}

// Get returns the value stored under the given name. An absent name fails
// with a sable.ParameterNotFoundError carrying the store's error code and
// message verbatim.
func (s *BasicConfigStore) Get(ctx context.Context, name string) (string, error) {
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", sable.NewParameterNotFoundError(name, notFound.ErrorCode(), notFound.ErrorMessage())
		}
		return "", errors.Wrapf(err, "getting parameter '%s'", name)
	}
	if out.Parameter == nil {
		return "", errors.Errorf("store returned no parameter for '%s'", name)
	}

	return utility.FromStringPtr(out.Parameter.Value), nil
}

// GetMany returns the values for the given names. Partial misses are not an
// error; found and missing are disjoint and together cover the requested
// names.
func (s *BasicConfigStore) GetMany(ctx context.Context, names []string) (map[string]string, []string, error) {
	out, err := s.client.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          names,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "getting parameters")
	}

	found := map[string]string{}
	for _, p := range out.Parameters {
		found[utility.FromStringPtr(p.Name)] = utility.FromStringPtr(p.Value)
	}

	return found, out.InvalidParameters, nil
}

// Put writes a value under the given name. Putting without overwrite on an
// existing name is a silent no-op, so idempotent provisioning can run
// repeatedly without clobbering live state.
func (s *BasicConfigStore) Put(ctx context.Context, name, value string, overwrite bool) error {
	_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      types.ParameterTypeString,
		Overwrite: aws.Bool(overwrite),
	})
	if err != nil {
		var exists *types.ParameterAlreadyExists
		if !overwrite && errors.As(err, &exists) {
			return nil
		}
		return errors.Wrapf(err, "putting parameter '%s'", name)
	}

	return nil
}
