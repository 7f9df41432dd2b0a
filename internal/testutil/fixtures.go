package testutil

import (
	"context"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/evergreen-ci/utility"
	"github.com/goccy/go-json"
	"github.com/helia-ci/sable"
	"github.com/stretchr/testify/require"
)

const projectName = "sable"

// runtimeNamespace is a random string generated during testing runtime that
// acts as a namespace for this particular runtime's tests. It is used to
// namespace store parameters so that tests running concurrently on different
// machines do not interfere with each other's resources.
var runtimeNamespace = utility.RandomString()

// NewParameterName creates a new test parameter name with a common prefix,
// the given test's name, and a random string.
func NewParameterName(t *testing.T) string {
	return path.Join(parameterName(t), utility.RandomString())
}

func parameterName(t *testing.T) string {
	return path.Join(strings.TrimSuffix(ParameterPrefix(), "/"), projectName, runtimeNamespace, t.Name())
}

// ParameterPrefix returns the prefix name for parameters from the environment
// variable.
func ParameterPrefix() string {
	return os.Getenv("AWS_PARAMETER_PREFIX")
}

// TestFunctionName is the function name used for unit test integration
// instances.
const TestFunctionName = "unit_test_prefix_unit_test_cluster_duo_auth_unit_app_app"

// ValidIntegrationConfig returns a config that is reflective of a valid
// provisioned integration instance of the given type.
func ValidIntegrationConfig(integrationType string) sable.IntegrationConfig {
	return sable.IntegrationConfig{
		Type:         integrationType,
		Cluster:      "unit_test_cluster",
		AppName:      "unit_app",
		Prefix:       "unit_test_prefix",
		Interval:     "rate(1 hour)",
		Region:       "us-east-1",
		AccountID:    "123456789012",
		FunctionName: TestFunctionName,
		Qualifier:    "production",
	}
}

// ValidRunState returns a run state that is reflective of a previously
// initialized integration instance.
func ValidRunState() sable.RunState {
	return sable.RunState{
		LastTimestamp: 1505591798,
		CurrentState:  sable.RunStatusRunning,
	}
}

// DuoAuthInfo returns valid auth info for the duo integration family.
func DuoAuthInfo() sable.AuthInfo {
	return sable.AuthInfo{
		"api_hostname":    "api-abcdef12.duosecurity.com",
		"integration_key": "DI1234567890ABCDEF12",
		"secret_key":      "abcdefghijklmnopqrstuvwxyz1234567890ABCD",
	}
}

// SeedIntegration writes the config, state, and auth records for a valid
// integration instance of the given type through the config store, so tests
// can exercise a fully provisioned instance.
func SeedIntegration(ctx context.Context, t *testing.T, store sable.ConfigStore, functionName, integrationType string) {
	cfg := ValidIntegrationConfig(integrationType)
	cfg.Type = integrationType

	rawConfig, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, sable.ParameterConfigName(functionName), string(rawConfig), true))

	rawState, err := json.Marshal(ValidRunState())
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, sable.ParameterStateName(functionName), string(rawState), true))

	rawAuth, err := json.Marshal(DuoAuthInfo())
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, sable.ParameterAuthName(functionName), string(rawAuth), true))
}
