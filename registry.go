package sable

import (
	"context"
	"time"
)

// FetchWindow is the half-open time range (Start, End] that one poll cycle
// collects data for.
type FetchWindow struct {
	Start time.Time
	End   time.Time
}

// Fetcher retrieves data from a third-party service endpoint for a fetch
// window. Concrete fetchers are external collaborators supplied by the
// integration being polled.
type Fetcher interface {
	// Fetch collects the data for the window and returns it as a payload
	// ready for dispatch.
	Fetch(ctx context.Context, window FetchWindow) ([]byte, error)
}

// FetcherFactory constructs a fetcher for an integration from its resolved
// auth payload.
type FetcherFactory func(auth AuthInfo) (Fetcher, error)

// IntegrationDescription declares the auth-shape expectations and fetch
// capability of one integration type.
type IntegrationDescription struct {
	// Type is the integration type identifier.
	Type string
	// RequiredAuthKeys are the credential fields that must be present in
	// the stored auth payload for this type.
	RequiredAuthKeys []string
	// NewFetcher constructs the integration's fetcher. It may be nil for
	// types whose fetcher is supplied directly by the caller.
	NewFetcher FetcherFactory
}

// Registry maps an integration-type identifier to its declared description.
// It is a static mapping extended by adding entries, so new integration types
// are additive and do not modify dispatch logic.
type Registry struct {
	descriptions map[string]IntegrationDescription
}

// NewRegistry returns a registry with no registered integration types.
func NewRegistry() *Registry {
	return &Registry{descriptions: map[string]IntegrationDescription{}}
}

// DefaultRegistry returns a registry seeded with the built-in integration
// types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	duoAuthKeys := []string{"api_hostname", "integration_key", "secret_key"}
	for _, t := range []string{"duo", "duo_admin", "duo_auth"} {
		r.Register(IntegrationDescription{
			Type:             t,
			RequiredAuthKeys: duoAuthKeys,
		})
	}
	return r
}

// Register adds or replaces the description for an integration type.
func (r *Registry) Register(desc IntegrationDescription) *Registry {
	r.descriptions[desc.Type] = desc
	return r
}

// Describe returns the description for an integration type. It fails with an
// UnknownIntegrationError if the type is not registered.
func (r *Registry) Describe(integrationType string) (*IntegrationDescription, error) {
	desc, ok := r.descriptions[integrationType]
	if !ok {
		return nil, NewUnknownIntegrationError(integrationType)
	}
	return &desc, nil
}

// IsRegistered returns whether the integration type is registered.
func (r *Registry) IsRegistered(integrationType string) bool {
	_, ok := r.descriptions[integrationType]
	return ok
}

// Types returns the registered integration type identifiers.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.descriptions))
	for t := range r.descriptions {
		types = append(types, t)
	}
	return types
}
