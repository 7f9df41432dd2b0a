package testcase

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/evergreen-ci/utility"
	"github.com/helia-ci/sable"
	"github.com/helia-ci/sable/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ParameterStoreClientTestCase represents a test case for a
// sable.ParameterStoreClient.
type ParameterStoreClientTestCase func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient)

// ParameterStoreClientTests returns common test cases that a
// sable.ParameterStoreClient should support.
func ParameterStoreClientTests() map[string]ParameterStoreClientTestCase {
	return map[string]ParameterStoreClientTestCase{
		"PutParameterSucceeds": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			name := testutil.NewParameterName(t)
			out, err := c.PutParameter(ctx, &ssm.PutParameterInput{
				Name:  aws.String(name),
				Value: aws.String(utility.RandomString()),
				Type:  types.ParameterTypeString,
			})
			require.NoError(t, err)
			require.NotZero(t, out)

			cleanupParameter(ctx, t, c, name)
		},
		"PutParameterFailsWithInvalidInput": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			out, err := c.PutParameter(ctx, &ssm.PutParameterInput{})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"PutParameterWithoutOverwriteFailsWithExistingParameter": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			name := testutil.NewParameterName(t)
			_, err := c.PutParameter(ctx, &ssm.PutParameterInput{
				Name:  aws.String(name),
				Value: aws.String("first"),
				Type:  types.ParameterTypeString,
			})
			require.NoError(t, err)

			defer cleanupParameter(ctx, t, c, name)

			_, err = c.PutParameter(ctx, &ssm.PutParameterInput{
				Name:  aws.String(name),
				Value: aws.String("second"),
				Type:  types.ParameterTypeString,
			})
			assert.Error(t, err)

			getOut, err := c.GetParameter(ctx, &ssm.GetParameterInput{
				Name: aws.String(name),
			})
			require.NoError(t, err)
			require.NotZero(t, getOut.Parameter)
			assert.Equal(t, "first", utility.FromStringPtr(getOut.Parameter.Value))
		},
		"PutParameterWithOverwriteUpdatesExistingParameter": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			name := testutil.NewParameterName(t)
			_, err := c.PutParameter(ctx, &ssm.PutParameterInput{
				Name:  aws.String(name),
				Value: aws.String("first"),
				Type:  types.ParameterTypeString,
			})
			require.NoError(t, err)

			defer cleanupParameter(ctx, t, c, name)

			_, err = c.PutParameter(ctx, &ssm.PutParameterInput{
				Name:      aws.String(name),
				Value:     aws.String("second"),
				Type:      types.ParameterTypeString,
				Overwrite: aws.Bool(true),
			})
			require.NoError(t, err)

			getOut, err := c.GetParameter(ctx, &ssm.GetParameterInput{
				Name: aws.String(name),
			})
			require.NoError(t, err)
			require.NotZero(t, getOut.Parameter)
			assert.Equal(t, "second", utility.FromStringPtr(getOut.Parameter.Value))
		},
		"GetParameterSucceedsWithExistingParameter": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			name := testutil.NewParameterName(t)
			value := utility.RandomString()
			_, err := c.PutParameter(ctx, &ssm.PutParameterInput{
				Name:  aws.String(name),
				Value: aws.String(value),
				Type:  types.ParameterTypeString,
			})
			require.NoError(t, err)

			defer cleanupParameter(ctx, t, c, name)

			out, err := c.GetParameter(ctx, &ssm.GetParameterInput{
				Name: aws.String(name),
			})
			require.NoError(t, err)
			require.NotZero(t, out.Parameter)
			assert.Equal(t, name, utility.FromStringPtr(out.Parameter.Name))
			assert.Equal(t, value, utility.FromStringPtr(out.Parameter.Value))
		},
		"GetParameterFailsWithInvalidInput": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			out, err := c.GetParameter(ctx, &ssm.GetParameterInput{})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"GetParameterFailsWithNonexistentParameter": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			out, err := c.GetParameter(ctx, &ssm.GetParameterInput{
				Name: aws.String(testutil.NewParameterName(t)),
			})
			assert.Error(t, err)
			assert.Zero(t, out)

			var notFound *types.ParameterNotFound
			assert.ErrorAs(t, err, &notFound)
		},
		"GetParametersPartitionsFoundAndMissing": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			found := testutil.NewParameterName(t)
			missing := testutil.NewParameterName(t)
			_, err := c.PutParameter(ctx, &ssm.PutParameterInput{
				Name:  aws.String(found),
				Value: aws.String("present"),
				Type:  types.ParameterTypeString,
			})
			require.NoError(t, err)

			defer cleanupParameter(ctx, t, c, found)

			out, err := c.GetParameters(ctx, &ssm.GetParametersInput{
				Names: []string{found, missing},
			})
			require.NoError(t, err)
			require.Len(t, out.Parameters, 1)
			assert.Equal(t, found, utility.FromStringPtr(out.Parameters[0].Name))
			assert.Equal(t, []string{missing}, out.InvalidParameters)
		},
		"DeleteParameterSucceedsWithExistingParameter": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			name := testutil.NewParameterName(t)
			_, err := c.PutParameter(ctx, &ssm.PutParameterInput{
				Name:  aws.String(name),
				Value: aws.String("doomed"),
				Type:  types.ParameterTypeString,
			})
			require.NoError(t, err)

			_, err = c.DeleteParameter(ctx, &ssm.DeleteParameterInput{
				Name: aws.String(name),
			})
			require.NoError(t, err)

			out, err := c.GetParameter(ctx, &ssm.GetParameterInput{
				Name: aws.String(name),
			})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
		"DeleteParameterFailsWithNonexistentParameter": func(ctx context.Context, t *testing.T, c sable.ParameterStoreClient) {
			out, err := c.DeleteParameter(ctx, &ssm.DeleteParameterInput{
				Name: aws.String(testutil.NewParameterName(t)),
			})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
	}
}

func cleanupParameter(ctx context.Context, t *testing.T, c sable.ParameterStoreClient, name string) {
	_, err := c.DeleteParameter(ctx, &ssm.DeleteParameterInput{
		Name: aws.String(name),
	})
	require.NoError(t, err)
}
