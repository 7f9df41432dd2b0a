package sable

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIntegrationConfig() IntegrationConfig {
	return IntegrationConfig{
		Type:     "duo_auth",
		Cluster:  "unit_test_cluster",
		AppName:  "unit_app",
		Prefix:   "unit_test_prefix",
		Interval: "rate(1 hour)",
	}
}

func TestIntegrationConfig(t *testing.T) {
	t.Run("NewIntegrationConfigSetsNoFields", func(t *testing.T) {
		cfg := NewIntegrationConfig()
		require.NotZero(t, cfg)
		assert.Zero(t, *cfg)
	})
	t.Run("SettersPopulateFields", func(t *testing.T) {
		cfg := NewIntegrationConfig().
			SetType("duo_auth").
			SetCluster("unit_test_cluster").
			SetAppName("unit_app").
			SetPrefix("unit_test_prefix").
			SetInterval("rate(1 hour)").
			SetRegion("us-east-1").
			SetAccountID("123456789012").
			SetFunctionName("unit_test_prefix_unit_test_cluster_duo_auth_unit_app_app").
			SetQualifier("production")

		assert.Equal(t, "duo_auth", cfg.Type)
		assert.Equal(t, "unit_test_cluster", cfg.Cluster)
		assert.Equal(t, "unit_app", cfg.AppName)
		assert.Equal(t, "unit_test_prefix", cfg.Prefix)
		assert.Equal(t, "rate(1 hour)", cfg.Interval)
		assert.Equal(t, "us-east-1", cfg.Region)
		assert.Equal(t, "123456789012", cfg.AccountID)
		assert.Equal(t, "unit_test_prefix_unit_test_cluster_duo_auth_unit_app_app", cfg.FunctionName)
		assert.Equal(t, "production", cfg.Qualifier)
		assert.NoError(t, cfg.Validate(DefaultRegistry()))
	})
}

func TestIntegrationConfigValidate(t *testing.T) {
	r := DefaultRegistry()

	t.Run("SucceedsWithValidConfig", func(t *testing.T) {
		cfg := validIntegrationConfig()
		assert.NoError(t, cfg.Validate(r))
	})
	t.Run("FailsWithoutType", func(t *testing.T) {
		cfg := validIntegrationConfig()
		cfg.Type = ""
		assert.Error(t, cfg.Validate(r))
	})
	t.Run("FailsWithUnregisteredType", func(t *testing.T) {
		cfg := validIntegrationConfig()
		cfg.Type = "carrier_pigeon"
		err := cfg.Validate(r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not registered")
	})
	t.Run("FailsWithoutCluster", func(t *testing.T) {
		cfg := validIntegrationConfig()
		cfg.Cluster = ""
		assert.Error(t, cfg.Validate(r))
	})
	t.Run("FailsWithoutAppName", func(t *testing.T) {
		cfg := validIntegrationConfig()
		cfg.AppName = ""
		assert.Error(t, cfg.Validate(r))
	})
	t.Run("FailsWithoutPrefix", func(t *testing.T) {
		cfg := validIntegrationConfig()
		cfg.Prefix = ""
		assert.Error(t, cfg.Validate(r))
	})
	t.Run("FailsWithoutInterval", func(t *testing.T) {
		cfg := validIntegrationConfig()
		cfg.Interval = ""
		assert.Error(t, cfg.Validate(r))
	})
	t.Run("FailsWithMalformedInterval", func(t *testing.T) {
		cfg := validIntegrationConfig()
		cfg.Interval = "rate(sometimes)"
		assert.Error(t, cfg.Validate(r))
	})
	t.Run("SucceedsWithoutRegistryTypeCheck", func(t *testing.T) {
		cfg := validIntegrationConfig()
		cfg.Type = "carrier_pigeon"
		assert.NoError(t, cfg.Validate(nil))
	})
}

func TestIntegrationConfigJSON(t *testing.T) {
	raw := `{"type":"duo_auth","cluster":"unit_test_cluster","app_name":"unit_app","prefix":"unit_test_prefix","interval":"rate(1 hour)"}`

	var cfg IntegrationConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	assert.Equal(t, "duo_auth", cfg.Type)
	assert.Equal(t, "unit_app", cfg.AppName)
	assert.NoError(t, cfg.Validate(DefaultRegistry()))
}

func TestParameterNames(t *testing.T) {
	assert.Equal(t, "poller_fn_config", ParameterConfigName("poller_fn"))
	assert.Equal(t, "poller_fn_state", ParameterStateName("poller_fn"))
	assert.Equal(t, "poller_fn_auth", ParameterAuthName("poller_fn"))
}
