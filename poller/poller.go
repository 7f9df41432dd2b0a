package poller

import (
	"context"
	"time"

	"github.com/evergreen-ci/utility"
	"github.com/goccy/go-json"
	"github.com/helia-ci/sable"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// CycleState represents where a poller currently is within one poll cycle.
type CycleState string

const (
	// CycleStateIdle indicates that no cycle is in progress.
	CycleStateIdle CycleState = "IDLE"
	// CycleStateFetching indicates that the poller is collecting data from
	// the integration endpoint.
	CycleStateFetching CycleState = "FETCHING"
	// CycleStateDispatching indicates that the poller is handing collected
	// data off for downstream processing.
	CycleStateDispatching CycleState = "DISPATCHING"
	// CycleStateCheckpointing indicates that the poller is writing its
	// durable progress record.
	CycleStateCheckpointing CycleState = "CHECKPOINTING"
	// CycleStateError indicates that the cycle failed. It is a recoverable
	// wait state, not terminal - the next tick restarts the cycle.
	CycleStateError CycleState = "ERROR"
)

// defaultDispatchTimeBudget is the minimum remaining execution time required
// before the poller is willing to enter dispatch.
const defaultDispatchTimeBudget = 10 * time.Second

// BasicPollerOptions are options to create a basic poller.
type BasicPollerOptions struct {
	// Store is the config store holding the instance's durable records.
	Store sable.ConfigStore
	// Tracker owns the instance's persisted run state.
	Tracker sable.StateTracker
	// Credentials resolves the instance's auth payload.
	Credentials sable.CredentialProvider
	// Dispatcher hands collected data off for downstream processing.
	Dispatcher sable.Dispatcher
	// Registry declares the known integration types.
	Registry *sable.Registry
	// FunctionContext is the execution context of the scheduled invocation
	// that owns the cycle.
	FunctionContext sable.FunctionContext
	// Fetcher collects data from the integration endpoint. If unset, the
	// registry's fetcher factory for the configured type is used.
	Fetcher sable.Fetcher
	// Target is the identifier of the downstream processing target.
	Target *string
	// Mode is the invocation mode for dispatch. Defaults to asynchronous.
	Mode *sable.InvocationMode
	// DispatchTimeBudget is the minimum remaining execution time required
	// before entering dispatch. If less time remains, the cycle fails
	// without attempting dispatch, preserving the at-least-once guarantee.
	DispatchTimeBudget *time.Duration
	// Clock returns the current time. Defaults to the system clock.
	Clock func() time.Time
}

// NewBasicPollerOptions returns new uninitialized options to create a basic
// poller.
func NewBasicPollerOptions() *BasicPollerOptions {
	return &BasicPollerOptions{}
}

// SetStore sets the config store holding the instance's durable records.
func (o *BasicPollerOptions) SetStore(s sable.ConfigStore) *BasicPollerOptions {
	o.Store = s
	return o
}

// SetTracker sets the state tracker that owns the persisted run state.
func (o *BasicPollerOptions) SetTracker(t sable.StateTracker) *BasicPollerOptions {
	o.Tracker = t
	return o
}

// SetCredentials sets the credential provider.
func (o *BasicPollerOptions) SetCredentials(p sable.CredentialProvider) *BasicPollerOptions {
	o.Credentials = p
	return o
}

// SetDispatcher sets the dispatcher that hands off collected data.
func (o *BasicPollerOptions) SetDispatcher(d sable.Dispatcher) *BasicPollerOptions {
	o.Dispatcher = d
	return o
}

// SetRegistry sets the integration registry.
func (o *BasicPollerOptions) SetRegistry(r *sable.Registry) *BasicPollerOptions {
	o.Registry = r
	return o
}

// SetFunctionContext sets the execution context of the owning invocation.
func (o *BasicPollerOptions) SetFunctionContext(fc sable.FunctionContext) *BasicPollerOptions {
	o.FunctionContext = fc
	return o
}

// SetFetcher sets the fetcher collecting data from the integration endpoint.
func (o *BasicPollerOptions) SetFetcher(f sable.Fetcher) *BasicPollerOptions {
	o.Fetcher = f
	return o
}

// SetTarget sets the identifier of the downstream processing target.
func (o *BasicPollerOptions) SetTarget(target string) *BasicPollerOptions {
	o.Target = &target
	return o
}

// SetMode sets the invocation mode for dispatch.
func (o *BasicPollerOptions) SetMode(mode sable.InvocationMode) *BasicPollerOptions {
	o.Mode = &mode
	return o
}

// SetDispatchTimeBudget sets the minimum remaining execution time required
// before entering dispatch.
func (o *BasicPollerOptions) SetDispatchTimeBudget(budget time.Duration) *BasicPollerOptions {
	o.DispatchTimeBudget = &budget
	return o
}

// SetClock sets the clock used to compute fetch windows.
func (o *BasicPollerOptions) SetClock(clock func() time.Time) *BasicPollerOptions {
	o.Clock = clock
	return o
}

// Validate checks that the required parameters to run poll cycles are given
// and sets defaults for unspecified options.
func (o *BasicPollerOptions) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(o.Store == nil, "must specify a config store")
	catcher.NewWhen(o.Tracker == nil, "must specify a state tracker")
	catcher.NewWhen(o.Credentials == nil, "must specify a credential provider")
	catcher.NewWhen(o.Dispatcher == nil, "must specify a dispatcher")
	catcher.NewWhen(o.Registry == nil, "must specify a registry")
	catcher.NewWhen(o.FunctionContext == nil, "must specify a function context")
	catcher.NewWhen(utility.FromStringPtr(o.Target) == "", "must specify a dispatch target")
	if o.Mode != nil {
		catcher.Add(o.Mode.Validate())
	}

	if catcher.HasErrors() {
		return catcher.Resolve()
	}

	if o.Mode == nil {
		mode := sable.InvocationModeAsync
		o.Mode = &mode
	}
	if o.DispatchTimeBudget == nil {
		budget := defaultDispatchTimeBudget
		o.DispatchTimeBudget = &budget
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}

	return nil
}

// BasicPoller drives fetch, dispatch, and checkpoint cycles for one
// integration instance. It exclusively owns the lifecycle of a poll cycle; a
// cycle runs to completion before the next tick begins, and distinct
// integration instances run fully independently.
type BasicPoller struct {
	opts  BasicPollerOptions
	state CycleState
}

// NewBasicPoller creates a new poller from the given options.
func NewBasicPoller(opts BasicPollerOptions) (*BasicPoller, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}

	return &BasicPoller{opts: opts, state: CycleStateIdle}, nil
}

// State returns where the poller currently is within its cycle.
func (p *BasicPoller) State() CycleState {
	return p.state
}

// RunCycle runs one complete poll cycle: it loads the instance's config, run
// state, and credentials, fetches data for the window since the last
// checkpoint, dispatches the data downstream, and checkpoints its progress.
// A fetch or dispatch failure checkpoints a failed state with the window
// unchanged so the next tick retries from the same point.
func (p *BasicPoller) RunCycle(ctx context.Context) error {
	p.state = CycleStateIdle

	cfg, state, fetcher, err := p.prepare(ctx)
	if err != nil {
		p.state = CycleStateError
		return errors.Wrap(err, "preparing cycle")
	}

	window := sable.FetchWindow{
		Start: time.Unix(state.LastTimestamp, 0).UTC(),
		End:   p.opts.Clock().Truncate(time.Second).UTC(),
	}

	// Mark the cycle as running up front so a crashed cycle is visible.
	if err := p.opts.Tracker.Save(ctx, sable.RunState{
		LastTimestamp: state.LastTimestamp,
		CurrentState:  sable.RunStatusRunning,
	}); err != nil {
		p.state = CycleStateError
		return errors.Wrap(err, "marking cycle as running")
	}

	p.state = CycleStateFetching
	payload, err := fetcher.Fetch(ctx, window)
	if err != nil {
		return p.failCycle(ctx, *state, errors.Wrap(err, "fetching"))
	}

	if len(payload) > 0 {
		// Dispatch takes its own remote call; if the invocation's
		// remaining budget cannot cover it, fail now with the window
		// unchanged rather than risk an interrupted hand-off.
		if remaining := p.opts.FunctionContext.RemainingTime(); remaining < *p.opts.DispatchTimeBudget {
			return p.failCycle(ctx, *state, errors.Errorf("insufficient time remaining for dispatch: %s < %s", remaining, *p.opts.DispatchTimeBudget))
		}

		p.state = CycleStateDispatching
		req := sable.NewDispatchRequest().
			SetTarget(utility.FromStringPtr(p.opts.Target)).
			SetMode(*p.opts.Mode).
			SetPayload(payload)
		if cfg.Qualifier != "" {
			req.SetQualifier(cfg.Qualifier)
		}

		requestID, err := p.opts.Dispatcher.Invoke(ctx, *req)
		if err != nil {
			return p.failCycle(ctx, *state, errors.Wrap(err, "dispatching"))
		}

		grip.Info(message.Fields{
			"message":    "dispatched collected data",
			"function":   p.opts.FunctionContext.FunctionName(),
			"type":       cfg.Type,
			"target":     utility.FromStringPtr(p.opts.Target),
			"request_id": requestID,
			"bytes":      len(payload),
		})
	}

	p.state = CycleStateCheckpointing
	if err := p.opts.Tracker.Save(ctx, sable.RunState{
		LastTimestamp: window.End.Unix(),
		CurrentState:  sable.RunStatusSucceeded,
	}); err != nil {
		p.state = CycleStateError
		return errors.Wrap(err, "writing succeeded checkpoint")
	}

	p.state = CycleStateIdle

	return nil
}

// prepare loads the cycle's inputs: the integration config, the persisted run
// state, the resolved credentials, and the fetcher. Failures here surface
// without a checkpoint since no usable state has been established yet.
func (p *BasicPoller) prepare(ctx context.Context) (*sable.IntegrationConfig, *sable.RunState, sable.Fetcher, error) {
	functionName := p.opts.FunctionContext.FunctionName()

	raw, err := p.opts.Store.Get(ctx, sable.ParameterConfigName(functionName))
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading integration config")
	}

	var cfg sable.IntegrationConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "unmarshalling integration config")
	}
	if err := cfg.Validate(p.opts.Registry); err != nil {
		return nil, nil, nil, errors.Wrap(err, "invalid integration config")
	}

	state, err := p.opts.Tracker.Load(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading run state")
	}

	auth, err := p.opts.Credentials.Resolve(ctx, cfg.Type)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "resolving credentials")
	}

	fetcher := p.opts.Fetcher
	if fetcher == nil {
		desc, err := p.opts.Registry.Describe(cfg.Type)
		if err != nil {
			return nil, nil, nil, err
		}
		if desc.NewFetcher == nil {
			return nil, nil, nil, errors.Errorf("integration type '%s' declares no fetcher and none was given", cfg.Type)
		}
		fetcher, err = desc.NewFetcher(auth)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "constructing fetcher")
		}
	}

	return &cfg, state, fetcher, nil
}

// failCycle writes the failed checkpoint with the fetch window unchanged, so
// the next tick retries from the same point, then re-surfaces the cause.
func (p *BasicPoller) failCycle(ctx context.Context, state sable.RunState, cause error) error {
	p.state = CycleStateError

	catcher := grip.NewBasicCatcher()
	catcher.Add(cause)
	catcher.Wrap(p.opts.Tracker.Save(ctx, sable.RunState{
		LastTimestamp: state.LastTimestamp,
		CurrentState:  sable.RunStatusFailed,
	}), "writing failed checkpoint")

	grip.Error(message.WrapError(cause, message.Fields{
		"message":  "poll cycle failed",
		"function": p.opts.FunctionContext.FunctionName(),
	}))

	return catcher.Resolve()
}
