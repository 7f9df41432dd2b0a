package dispatch

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/helia-ci/sable"
	"github.com/helia-ci/sable/internal/testcase"
	"github.com/helia-ci/sable/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicFunctionClient(t *testing.T) {
	assert.Implements(t, (*sable.FunctionClient)(nil), &BasicFunctionClient{})

	if os.Getenv("AWS_LAMBDA_TARGET") == "" {
		t.Skip("skipping Lambda integration tests")
	}

	testutil.CheckAWSEnvVarsForLambda(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for tName, tCase := range testcase.FunctionClientTests() {
		t.Run(tName, func(t *testing.T) {
			tctx, tcancel := context.WithTimeout(ctx, 30*time.Second)
			defer tcancel()

			hc := utility.GetHTTPClient()
			defer utility.PutHTTPClient(hc)

			c, err := NewBasicFunctionClient(testutil.ValidIntegrationAWSOptions(hc))
			require.NoError(t, err)
			require.NotNil(t, c)

			defer func() {
				assert.NoError(t, c.Close(tctx))
			}()

			tCase(tctx, t, c, os.Getenv("AWS_LAMBDA_TARGET"))
		})
	}
}
