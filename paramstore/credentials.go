package paramstore

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/helia-ci/sable"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// BasicCredentialProvider provides a sable.CredentialProvider implementation
// that joins the registry's declared auth shape for an integration type with
// the secret values stored under the function's auth record.
type BasicCredentialProvider struct {
	store    sable.ConfigStore
	registry *sable.Registry
	key      string
}

// NewBasicCredentialProvider creates a credential provider for the
// integration instance owned by the given function name.
func NewBasicCredentialProvider(store sable.ConfigStore, registry *sable.Registry, functionName string) (*BasicCredentialProvider, error) {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(store == nil, "must specify a config store")
	catcher.NewWhen(registry == nil, "must specify a registry")
	catcher.NewWhen(functionName == "", "must specify a function name")
	if catcher.HasErrors() {
		return nil, catcher.Resolve()
	}

	return &BasicCredentialProvider{
		store:    store,
		registry: registry,
		key:      sable.ParameterAuthName(functionName),
	}, nil
}

// Resolve returns the stored auth payload for an integration type. An
// unregistered type fails with a sable.UnknownIntegrationError before the
// store is touched, and a stored payload missing any of the type's declared
// auth keys is rejected.
func (p *BasicCredentialProvider) Resolve(ctx context.Context, integrationType string) (sable.AuthInfo, error) {
	desc, err := p.registry.Describe(integrationType)
	if err != nil {
		return nil, err
	}

	raw, err := p.store.Get(ctx, p.key)
	if err != nil {
		return nil, errors.Wrapf(err, "getting auth for integration type '%s'", integrationType)
	}

	var auth sable.AuthInfo
	if err := json.Unmarshal([]byte(raw), &auth); err != nil {
		return nil, errors.Wrap(err, "unmarshalling auth payload")
	}

	catcher := grip.NewBasicCatcher()
	for _, key := range desc.RequiredAuthKeys {
		catcher.ErrorfWhen(auth[key] == "", "auth payload is missing required key '%s'", key)
	}
	if catcher.HasErrors() {
		return nil, errors.Wrapf(catcher.Resolve(), "invalid auth payload for integration type '%s'", integrationType)
	}

	return auth, nil
}
