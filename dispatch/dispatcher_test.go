package dispatch

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
	"github.com/evergreen-ci/utility"
	"github.com/helia-ci/sable"
	"github.com/helia-ci/sable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, assert.AnError
}

func TestBasicDispatcher(t *testing.T) {
	assert.Implements(t, (*sable.Dispatcher)(nil), &BasicDispatcher{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("NewBasicDispatcherFailsWithoutClient", func(t *testing.T) {
		d, err := NewBasicDispatcher(nil)
		assert.Error(t, err)
		assert.Zero(t, d)
	})

	for tName, tCase := range map[string]func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher){
		"InvokeSucceedsAndReturnsRequestID": func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher) {
			req := sable.NewDispatchRequest().
				SetTarget("arn:aws:lambda:us-east-1:123456789012:function:processor").
				SetMode(sable.InvocationModeAsync).
				SetPayload([]byte(`{"events": []}`))

			requestID, err := d.Invoke(ctx, *req)
			require.NoError(t, err)
			assert.NotZero(t, requestID)

			require.Len(t, client.Invocations, 1)
			in := client.Invocations[0]
			assert.Equal(t, "arn:aws:lambda:us-east-1:123456789012:function:processor", utility.FromStringPtr(in.FunctionName))
			assert.Equal(t, lambdatypes.InvocationTypeEvent, in.InvocationType)
			assert.Equal(t, []byte(`{"events": []}`), in.Payload)
		},
		"InvokePassesQualifierThrough": func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher) {
			req := sable.NewDispatchRequest().
				SetTarget("processor").
				SetMode(sable.InvocationModeSync).
				SetPayload([]byte("{}")).
				SetQualifier("production")

			_, err := d.Invoke(ctx, *req)
			require.NoError(t, err)

			require.Len(t, client.Invocations, 1)
			assert.Equal(t, "production", utility.FromStringPtr(client.Invocations[0].Qualifier))
			assert.Equal(t, lambdatypes.InvocationTypeRequestResponse, client.Invocations[0].InvocationType)
		},
		"InvokeReadsPayloadFromSource": func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher) {
			req := sable.NewDispatchRequest().
				SetTarget("processor").
				SetMode(sable.InvocationModeAsync).
				SetPayloadSource(bytes.NewReader([]byte("streamed")))

			_, err := d.Invoke(ctx, *req)
			require.NoError(t, err)

			require.Len(t, client.Invocations, 1)
			assert.Equal(t, []byte("streamed"), client.Invocations[0].Payload)
		},
		"InvokeFailsBeforeIOWithInvalidRequest": func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher) {
			req := sable.NewDispatchRequest().
				SetMode(sable.InvocationModeAsync).
				SetPayload([]byte("{}"))

			requestID, err := d.Invoke(ctx, *req)
			assert.Error(t, err)
			assert.True(t, sable.IsPayloadTypeError(err))
			assert.Zero(t, requestID)

			// Nothing reaches the client when validation fails.
			assert.Zero(t, client.InvokeInput)
			assert.Empty(t, client.Invocations)
		},
		"InvokeFailsWithUnreadablePayloadSource": func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher) {
			req := sable.NewDispatchRequest().
				SetTarget("processor").
				SetMode(sable.InvocationModeAsync).
				SetPayloadSource(failingReader{})

			requestID, err := d.Invoke(ctx, *req)
			assert.Error(t, err)
			assert.True(t, sable.IsPayloadTypeError(err))
			assert.Zero(t, requestID)
			assert.Empty(t, client.Invocations)
		},
		"InvokeTranslatesServiceErrors": func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher) {
			client.InvokeError = &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "function not found"}

			req := sable.NewDispatchRequest().
				SetTarget("processor").
				SetMode(sable.InvocationModeAsync).
				SetPayload([]byte("{}"))

			requestID, err := d.Invoke(ctx, *req)
			require.Error(t, err)
			assert.True(t, sable.IsDispatchError(err))
			assert.Contains(t, err.Error(), "ResourceNotFoundException")
			assert.Contains(t, err.Error(), "function not found")
			assert.Zero(t, requestID)
		},
		"InvokeTranslatesTransportErrors": func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher) {
			client.InvokeError = assert.AnError

			req := sable.NewDispatchRequest().
				SetTarget("processor").
				SetMode(sable.InvocationModeAsync).
				SetPayload([]byte("{}"))

			_, err := d.Invoke(ctx, *req)
			require.Error(t, err)
			assert.True(t, sable.IsDispatchError(err))
			assert.Contains(t, err.Error(), "RequestError")
		},
		"InvokeFailsWhenTargetReportsFunctionError": func(ctx context.Context, t *testing.T, client *mock.FunctionClient, d *BasicDispatcher) {
			client.InvokeOutput = &lambda.InvokeOutput{
				StatusCode:    200,
				FunctionError: utility.ToStringPtr("Unhandled"),
				Payload:       []byte(`{"errorMessage": "boom"}`),
			}

			requestID, err := d.Invoke(ctx, sable.DispatchRequest{
				Target:  utility.ToStringPtr("processor"),
				Mode:    modePtr(sable.InvocationModeSync),
				Payload: []byte("{}"),
			})
			require.Error(t, err)
			assert.True(t, sable.IsDispatchError(err))
			assert.Contains(t, err.Error(), "Unhandled")
			assert.Contains(t, err.Error(), "boom")
			assert.Zero(t, requestID)
		},
	} {
		t.Run(tName, func(t *testing.T) {
			tctx, tcancel := context.WithTimeout(ctx, 10*time.Second)
			defer tcancel()

			client := &mock.FunctionClient{}
			d, err := NewBasicDispatcher(client)
			require.NoError(t, err)
			require.NotNil(t, d)

			tCase(tctx, t, client, d)
		})
	}
}

func modePtr(m sable.InvocationMode) *sable.InvocationMode {
	return &m
}
