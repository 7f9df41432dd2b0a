package paramstore

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/helia-ci/sable"
	"github.com/pkg/errors"
)

// BasicStateTracker provides a sable.StateTracker implementation that
// persists run state through a config store under the function's state
// record.
type BasicStateTracker struct {
	store sable.ConfigStore
	key   string
}

// NewBasicStateTracker creates a state tracker for the integration instance
// owned by the given function name.
func NewBasicStateTracker(store sable.ConfigStore, functionName string) (*BasicStateTracker, error) {
	if store == nil {
		return nil, errors.New("must specify a config store")
	}
	if functionName == "" {
		return nil, errors.New("must specify a function name")
	}
	return &BasicStateTracker{
		store: store,
		key:   sable.ParameterStateName(functionName),
	}, nil
}

// Load reads and deserializes the persisted run state. An absent or
// malformed blob fails with a sable.StateCorruptError - the tracker never
// fabricates defaults, since silently resetting the last timestamp could
// cause duplicate or lost fetches.
func (t *BasicStateTracker) Load(ctx context.Context) (*sable.RunState, error) {
	raw, err := t.store.Get(ctx, t.key)
	if err != nil {
		if sable.IsParameterNotFoundError(err) {
			return nil, sable.NewStateCorruptError(t.key, "no persisted state")
		}
		return nil, errors.Wrap(err, "loading state")
	}

	var state sable.RunState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, sable.NewStateCorruptError(t.key, errors.Wrap(err, "unmarshalling state").Error())
	}
	if err := state.Validate(); err != nil {
		return nil, sable.NewStateCorruptError(t.key, err.Error())
	}

	return &state, nil
}

// Save persists the run state, always performing an overwrite write.
func (t *BasicStateTracker) Save(ctx context.Context, state sable.RunState) error {
	if err := state.Validate(); err != nil {
		return errors.Wrap(err, "invalid state")
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "marshalling state")
	}

	return errors.Wrap(t.store.Put(ctx, t.key, string(raw), true), "saving state")
}
