package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CheckAWSEnvVars checks that the required environment variables are defined
// for testing against any AWS API.
func CheckAWSEnvVars(t *testing.T) {
	CheckEnvVars(t,
		"AWS_ACCESS_KEY",
		"AWS_SECRET_ACCESS_KEY",
		"AWS_ROLE",
		"AWS_REGION",
	)
}

// CheckAWSEnvVarsForParameterStore checks that the required environment
// variables are defined for testing against SSM Parameter Store.
func CheckAWSEnvVarsForParameterStore(t *testing.T) {
	CheckEnvVars(t,
		"AWS_ACCESS_KEY",
		"AWS_SECRET_ACCESS_KEY",
		"AWS_PARAMETER_PREFIX",
		"AWS_ROLE",
		"AWS_REGION",
	)
}

// CheckAWSEnvVarsForLambda checks that the required environment variables are
// defined for testing against Lambda.
func CheckAWSEnvVarsForLambda(t *testing.T) {
	CheckEnvVars(t,
		"AWS_ACCESS_KEY",
		"AWS_SECRET_ACCESS_KEY",
		"AWS_LAMBDA_TARGET",
		"AWS_ROLE",
		"AWS_REGION",
	)
}

// CheckEnvVars checks that the required environment variables are set.
func CheckEnvVars(t *testing.T, envVars ...string) {
	var missing []string

	for _, envVar := range envVars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		require.FailNow(t, fmt.Sprintf("missing required AWS environment variables: %s", missing))
	}
}
