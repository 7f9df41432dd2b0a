package sable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("NewRegistryIsEmpty", func(t *testing.T) {
		r := NewRegistry()
		assert.Empty(t, r.Types())
	})
	t.Run("DefaultRegistryIncludesDuoFamily", func(t *testing.T) {
		r := DefaultRegistry()
		for _, integrationType := range []string{"duo", "duo_admin", "duo_auth"} {
			desc, err := r.Describe(integrationType)
			require.NoError(t, err)
			assert.Equal(t, integrationType, desc.Type)
			assert.ElementsMatch(t, []string{"api_hostname", "integration_key", "secret_key"}, desc.RequiredAuthKeys)
		}
	})
	t.Run("DescribeFailsWithUnregisteredType", func(t *testing.T) {
		desc, err := DefaultRegistry().Describe("carrier_pigeon")
		assert.Error(t, err)
		assert.True(t, IsUnknownIntegrationError(err))
		assert.Zero(t, desc)
	})
	t.Run("RegisterIsAdditive", func(t *testing.T) {
		r := DefaultRegistry()
		before := len(r.Types())
		r.Register(IntegrationDescription{
			Type:             "gsuite_admin",
			RequiredAuthKeys: []string{"keyfile"},
		})
		assert.Len(t, r.Types(), before+1)
		assert.True(t, r.IsRegistered("gsuite_admin"))

		desc, err := r.Describe("duo_auth")
		require.NoError(t, err)
		assert.Equal(t, "duo_auth", desc.Type)
	})
	t.Run("RegisterCanDeclareFetcher", func(t *testing.T) {
		r := NewRegistry()
		r.Register(IntegrationDescription{
			Type: "static",
			NewFetcher: func(auth AuthInfo) (Fetcher, error) {
				return staticFetcher{}, nil
			},
		})

		desc, err := r.Describe("static")
		require.NoError(t, err)
		require.NotNil(t, desc.NewFetcher)

		f, err := desc.NewFetcher(AuthInfo{})
		require.NoError(t, err)
		payload, err := f.Fetch(context.Background(), FetchWindow{})
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), payload)
	})
}

type staticFetcher struct{}

func (staticFetcher) Fetch(ctx context.Context, window FetchWindow) ([]byte, error) {
	return []byte("data"), nil
}
