package testcase

import (
	"context"
	"testing"

	"github.com/helia-ci/sable"
	"github.com/helia-ci/sable/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ConfigStoreTestCase represents a test case for a sable.ConfigStore.
type ConfigStoreTestCase func(ctx context.Context, t *testing.T, s sable.ConfigStore)

// ConfigStoreTests returns common test cases that a sable.ConfigStore should
// support.
func ConfigStoreTests() map[string]ConfigStoreTestCase {
	return map[string]ConfigStoreTestCase{
		"GetFailsWithNotFoundForUnwrittenName": func(ctx context.Context, t *testing.T, s sable.ConfigStore) {
			val, err := s.Get(ctx, testutil.NewParameterName(t))
			assert.Error(t, err)
			assert.True(t, sable.IsParameterNotFoundError(err))
			assert.Zero(t, val)
		},
		"PutThenGetRoundTrips": func(ctx context.Context, t *testing.T, s sable.ConfigStore) {
			name := testutil.NewParameterName(t)
			require.NoError(t, s.Put(ctx, name, "value", false))

			val, err := s.Get(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, "value", val)
		},
		"PutWithoutOverwriteIsNoOpOnExistingName": func(ctx context.Context, t *testing.T, s sable.ConfigStore) {
			name := testutil.NewParameterName(t)
			require.NoError(t, s.Put(ctx, name, "original", false))
			require.NoError(t, s.Put(ctx, name, "usurper", false))

			val, err := s.Get(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, "original", val)
		},
		"PutWithOverwriteAlwaysUpdates": func(ctx context.Context, t *testing.T, s sable.ConfigStore) {
			name := testutil.NewParameterName(t)
			require.NoError(t, s.Put(ctx, name, "original", true))
			require.NoError(t, s.Put(ctx, name, "replacement", true))

			val, err := s.Get(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, "replacement", val)
		},
		"GetManyPartitionsFoundAndMissing": func(ctx context.Context, t *testing.T, s sable.ConfigStore) {
			present := testutil.NewParameterName(t)
			absent := testutil.NewParameterName(t)
			require.NoError(t, s.Put(ctx, present, "here", false))

			found, missing, err := s.GetMany(ctx, []string{present, absent})
			require.NoError(t, err)
			assert.Equal(t, map[string]string{present: "here"}, found)
			assert.Equal(t, []string{absent}, missing)

			// The union of found and missing covers the request and the
			// two never overlap.
			assert.Len(t, found, 1)
			assert.Len(t, missing, 1)
			assert.NotContains(t, found, absent)
		},
		"GetManySucceedsWithNoMatches": func(ctx context.Context, t *testing.T, s sable.ConfigStore) {
			a := testutil.NewParameterName(t)
			b := testutil.NewParameterName(t)

			found, missing, err := s.GetMany(ctx, []string{a, b})
			require.NoError(t, err)
			assert.Empty(t, found)
			assert.ElementsMatch(t, []string{a, b}, missing)
		},
	}
}
