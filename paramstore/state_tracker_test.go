package paramstore

import (
	"context"
	"testing"
	"time"

	"github.com/helia-ci/sable"
	"github.com/helia-ci/sable/internal/testutil"
	"github.com/helia-ci/sable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicStateTracker(t *testing.T) {
	assert.Implements(t, (*sable.StateTracker)(nil), &BasicStateTracker{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("NewBasicStateTrackerFailsWithoutStore", func(t *testing.T) {
		tracker, err := NewBasicStateTracker(nil, testutil.TestFunctionName)
		assert.Error(t, err)
		assert.Zero(t, tracker)
	})
	t.Run("NewBasicStateTrackerFailsWithoutFunctionName", func(t *testing.T) {
		store, err := NewBasicConfigStore(&mock.ParameterStoreClient{})
		require.NoError(t, err)

		tracker, err := NewBasicStateTracker(store, "")
		assert.Error(t, err)
		assert.Zero(t, tracker)
	})

	for tName, tCase := range map[string]func(ctx context.Context, t *testing.T, store sable.ConfigStore, tracker *BasicStateTracker){
		"SaveThenLoadRoundTrips": func(ctx context.Context, t *testing.T, store sable.ConfigStore, tracker *BasicStateTracker) {
			saved := sable.RunState{
				LastTimestamp: 1505591798,
				CurrentState:  sable.RunStatusSucceeded,
			}
			require.NoError(t, tracker.Save(ctx, saved))

			loaded, err := tracker.Load(ctx)
			require.NoError(t, err)
			require.NotZero(t, loaded)
			assert.Equal(t, saved, *loaded)
		},
		"SaveOverwritesPreviousState": func(ctx context.Context, t *testing.T, store sable.ConfigStore, tracker *BasicStateTracker) {
			require.NoError(t, tracker.Save(ctx, sable.RunState{
				LastTimestamp: 100,
				CurrentState:  sable.RunStatusRunning,
			}))
			require.NoError(t, tracker.Save(ctx, sable.RunState{
				LastTimestamp: 200,
				CurrentState:  sable.RunStatusSucceeded,
			}))

			loaded, err := tracker.Load(ctx)
			require.NoError(t, err)
			assert.EqualValues(t, 200, loaded.LastTimestamp)
			assert.Equal(t, sable.RunStatusSucceeded, loaded.CurrentState)
		},
		"SaveFailsWithInvalidState": func(ctx context.Context, t *testing.T, store sable.ConfigStore, tracker *BasicStateTracker) {
			assert.Error(t, tracker.Save(ctx, sable.RunState{
				LastTimestamp: -1,
				CurrentState:  sable.RunStatusRunning,
			}))
			assert.Error(t, tracker.Save(ctx, sable.RunState{
				LastTimestamp: 100,
				CurrentState:  "limbo",
			}))
		},
		"LoadFailsAsCorruptWithNoPersistedState": func(ctx context.Context, t *testing.T, store sable.ConfigStore, tracker *BasicStateTracker) {
			loaded, err := tracker.Load(ctx)
			assert.Error(t, err)
			assert.True(t, sable.IsStateCorruptError(err))
			assert.Zero(t, loaded)
		},
		"LoadFailsAsCorruptWithMalformedBlob": func(ctx context.Context, t *testing.T, store sable.ConfigStore, tracker *BasicStateTracker) {
			require.NoError(t, store.Put(ctx, sable.ParameterStateName(testutil.TestFunctionName), "{not json", true))

			loaded, err := tracker.Load(ctx)
			assert.Error(t, err)
			assert.True(t, sable.IsStateCorruptError(err))
			assert.Zero(t, loaded)
		},
		"LoadFailsAsCorruptWithInvalidStateValues": func(ctx context.Context, t *testing.T, store sable.ConfigStore, tracker *BasicStateTracker) {
			require.NoError(t, store.Put(ctx, sable.ParameterStateName(testutil.TestFunctionName), `{"last_timestamp": -5, "current_state": "running"}`, true))

			loaded, err := tracker.Load(ctx)
			assert.Error(t, err)
			assert.True(t, sable.IsStateCorruptError(err))
			assert.Zero(t, loaded)
		},
	} {
		t.Run(tName, func(t *testing.T) {
			tctx, tcancel := context.WithTimeout(ctx, 10*time.Second)
			defer tcancel()

			mock.ResetGlobalParameterCache()

			store, err := NewBasicConfigStore(&mock.ParameterStoreClient{})
			require.NoError(t, err)

			tracker, err := NewBasicStateTracker(store, testutil.TestFunctionName)
			require.NoError(t, err)
			require.NotNil(t, tracker)

			tCase(tctx, t, store, tracker)
		})
	}
}
