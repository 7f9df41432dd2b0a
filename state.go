package sable

import (
	"context"

	"github.com/pkg/errors"
)

// RunStatus represents the durable outcome of an integration instance's most
// recent poll cycle.
type RunStatus string

const (
	// RunStatusRunning indicates that a poll cycle has started and not yet
	// reached a terminal checkpoint.
	RunStatusRunning RunStatus = "running"
	// RunStatusSucceeded indicates that the most recent poll cycle
	// completed and advanced the fetch window.
	RunStatusSucceeded RunStatus = "succeeded"
	// RunStatusFailed indicates that the most recent poll cycle failed and
	// will be retried from the same fetch window on the next tick.
	RunStatusFailed RunStatus = "failed"
)

// Validate checks that the run status is a recognized value.
func (s RunStatus) Validate() error {
	switch s {
	case RunStatusRunning, RunStatusSucceeded, RunStatusFailed:
		return nil
	default:
		return errors.Errorf("unrecognized run status '%s'", s)
	}
}

// RunState is the durable progress record for one integration instance. It is
// mutated exactly once per poll cycle, after each fetch/dispatch attempt, and
// is never deleted once initialized.
type RunState struct {
	// LastTimestamp is the end of the last successfully processed fetch
	// window in unix seconds.
	LastTimestamp int64 `json:"last_timestamp"`
	// CurrentState is the outcome of the most recent poll cycle.
	CurrentState RunStatus `json:"current_state"`
}

// Validate checks that the run state contents are usable.
func (s *RunState) Validate() error {
	if err := s.CurrentState.Validate(); err != nil {
		return err
	}
	if s.LastTimestamp < 0 {
		return errors.Errorf("last timestamp '%d' cannot be negative", s.LastTimestamp)
	}
	return nil
}

// StateTracker owns the persisted run state for one integration instance.
type StateTracker interface {
	// Load reads and deserializes the run state. If the stored blob is
	// absent or malformed, it fails with a StateCorruptError rather than
	// fabricating defaults.
	Load(ctx context.Context) (*RunState, error)
	// Save persists the run state, always performing an overwrite write.
	Save(ctx context.Context, state RunState) error
}
