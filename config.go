package sable

import (
	"github.com/mongodb/grip"
)

// IntegrationConfig describes one provisioned integration instance. It is
// created at provisioning time, immutable during a run, and replaceable by
// redeploy via an overwrite-flagged write.
type IntegrationConfig struct {
	// Type is the registered integration type identifier.
	Type string `json:"type"`
	// Cluster is the deployment cluster the instance belongs to.
	Cluster string `json:"cluster"`
	// AppName is the provisioned name of the integration app.
	AppName string `json:"app_name"`
	// Prefix namespaces the instance's resources within a deployment.
	Prefix string `json:"prefix"`
	// Interval is the recurring schedule expression driving poll ticks.
	Interval string `json:"interval"`
	// Region is the geographical region the instance runs in.
	Region string `json:"region,omitempty"`
	// AccountID is the account that owns the instance.
	AccountID string `json:"account_id,omitempty"`
	// FunctionName is the scheduled function that runs the poll cycles and
	// the shared prefix of the instance's parameter records.
	FunctionName string `json:"function_name,omitempty"`
	// Qualifier optionally pins dispatch invocations to a version or alias
	// of the downstream target.
	Qualifier string `json:"qualifier,omitempty"`
}

// NewIntegrationConfig returns a new uninitialized integration config.
func NewIntegrationConfig() *IntegrationConfig {
	return &IntegrationConfig{}
}

// SetType sets the registered integration type identifier.
func (c *IntegrationConfig) SetType(t string) *IntegrationConfig {
	c.Type = t
	return c
}

// SetCluster sets the deployment cluster the instance belongs to.
func (c *IntegrationConfig) SetCluster(cluster string) *IntegrationConfig {
	c.Cluster = cluster
	return c
}

// SetAppName sets the provisioned name of the integration app.
func (c *IntegrationConfig) SetAppName(name string) *IntegrationConfig {
	c.AppName = name
	return c
}

// SetPrefix sets the namespace prefix for the instance's resources.
func (c *IntegrationConfig) SetPrefix(prefix string) *IntegrationConfig {
	c.Prefix = prefix
	return c
}

// SetInterval sets the recurring schedule expression driving poll ticks.
func (c *IntegrationConfig) SetInterval(interval string) *IntegrationConfig {
	c.Interval = interval
	return c
}

// SetRegion sets the geographical region the instance runs in.
func (c *IntegrationConfig) SetRegion(region string) *IntegrationConfig {
	c.Region = region
	return c
}

// SetAccountID sets the account that owns the instance.
func (c *IntegrationConfig) SetAccountID(id string) *IntegrationConfig {
	c.AccountID = id
	return c
}

// SetFunctionName sets the scheduled function that runs the poll cycles.
func (c *IntegrationConfig) SetFunctionName(name string) *IntegrationConfig {
	c.FunctionName = name
	return c
}

// SetQualifier sets the version or alias pin for dispatch invocations.
func (c *IntegrationConfig) SetQualifier(qualifier string) *IntegrationConfig {
	c.Qualifier = qualifier
	return c
}

// Validate checks that the config names a registered integration type and
// that its interval parses to a valid recurring schedule.
func (c *IntegrationConfig) Validate(r *Registry) error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(c.Type == "", "must specify an integration type")
	catcher.NewWhen(c.Cluster == "", "must specify a cluster")
	catcher.NewWhen(c.AppName == "", "must specify an app name")
	catcher.NewWhen(c.Prefix == "", "must specify a prefix")

	if c.Type != "" && r != nil && !r.IsRegistered(c.Type) {
		catcher.Add(NewUnknownIntegrationError(c.Type))
	}

	if c.Interval == "" {
		catcher.New("must specify a schedule interval")
	} else if _, err := ParseInterval(c.Interval); err != nil {
		catcher.Wrap(err, "invalid schedule interval")
	}

	return catcher.Resolve()
}
