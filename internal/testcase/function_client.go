package testcase

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/helia-ci/sable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FunctionClientTestCase represents a test case for a sable.FunctionClient.
// The target is the function to invoke.
type FunctionClientTestCase func(ctx context.Context, t *testing.T, c sable.FunctionClient, target string)

// FunctionClientTests returns common test cases that a sable.FunctionClient
// should support.
func FunctionClientTests() map[string]FunctionClientTestCase {
	return map[string]FunctionClientTestCase{
		"InvokeSucceedsWithValidInput": func(ctx context.Context, t *testing.T, c sable.FunctionClient, target string) {
			out, err := c.Invoke(ctx, &lambda.InvokeInput{
				FunctionName:   aws.String(target),
				InvocationType: types.InvocationTypeEvent,
				Payload:        []byte(`{"records":[]}`),
			})
			require.NoError(t, err)
			require.NotZero(t, out)
			assert.EqualValues(t, 202, out.StatusCode)
		},
		"InvokeFailsWithMissingFunctionName": func(ctx context.Context, t *testing.T, c sable.FunctionClient, target string) {
			out, err := c.Invoke(ctx, &lambda.InvokeInput{
				InvocationType: types.InvocationTypeEvent,
				Payload:        []byte(`{}`),
			})
			assert.Error(t, err)
			assert.Zero(t, out)
		},
	}
}
