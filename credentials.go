package sable

import "context"

// AuthInfo holds the type-specific credential fields for one integration.
// It is immutable once stored; rotation is an external collaborator's
// responsibility.
type AuthInfo map[string]string

// CredentialProvider resolves per-integration-type auth payloads from the
// parameter store.
type CredentialProvider interface {
	// Resolve returns the auth payload for an integration type. If the
	// type is not registered, it fails with an UnknownIntegrationError
	// before touching the store.
	Resolve(ctx context.Context, integrationType string) (AuthInfo, error)
}
