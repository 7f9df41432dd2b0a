package mock

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/helia-ci/sable"
	"github.com/helia-ci/sable/internal/testcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterStoreClient(t *testing.T) {
	assert.Implements(t, (*sable.ParameterStoreClient)(nil), &ParameterStoreClient{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for tName, tCase := range testcase.ParameterStoreClientTests() {
		t.Run(tName, func(t *testing.T) {
			tctx, tcancel := context.WithTimeout(ctx, 10*time.Second)
			defer tcancel()

			ResetGlobalParameterCache()

			c := &ParameterStoreClient{}
			defer func() {
				assert.NoError(t, c.Close(tctx))
			}()

			tCase(tctx, t, c)
		})
	}

	t.Run("PutParameterIncrementsVersion", func(t *testing.T) {
		tctx, tcancel := context.WithTimeout(ctx, 10*time.Second)
		defer tcancel()

		ResetGlobalParameterCache()

		c := &ParameterStoreClient{}
		first, err := c.PutParameter(tctx, &ssm.PutParameterInput{
			Name:  aws.String("versioned"),
			Value: aws.String("one"),
			Type:  types.ParameterTypeString,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, first.Version)

		second, err := c.PutParameter(tctx, &ssm.PutParameterInput{
			Name:      aws.String("versioned"),
			Value:     aws.String("two"),
			Type:      types.ParameterTypeString,
			Overwrite: aws.Bool(true),
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, second.Version)
	})

	t.Run("OutputOverridesTakePriority", func(t *testing.T) {
		tctx, tcancel := context.WithTimeout(ctx, 10*time.Second)
		defer tcancel()

		ResetGlobalParameterCache()

		c := &ParameterStoreClient{
			GetParameterOutput: &ssm.GetParameterOutput{
				Parameter: &types.Parameter{
					Name:  aws.String("canned"),
					Value: aws.String("canned value"),
				},
			},
		}

		out, err := c.GetParameter(tctx, &ssm.GetParameterInput{Name: aws.String("anything")})
		require.NoError(t, err)
		require.NotZero(t, out.Parameter)
		assert.Equal(t, "canned value", *out.Parameter.Value)
		require.NotZero(t, c.GetParameterInput)
		assert.Equal(t, "anything", *c.GetParameterInput.Name)
	})

	t.Run("ErrorOverridesTakePriority", func(t *testing.T) {
		tctx, tcancel := context.WithTimeout(ctx, 10*time.Second)
		defer tcancel()

		ResetGlobalParameterCache()

		c := &ParameterStoreClient{PutParameterError: assert.AnError}
		out, err := c.PutParameter(tctx, &ssm.PutParameterInput{
			Name:  aws.String("doomed"),
			Value: aws.String("value"),
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, out)
	})
}
