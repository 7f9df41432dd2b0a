package sable

import (
	"context"
	"fmt"
)

// ConfigStore allows you to interact with the durable key/value records an
// integration instance keeps in a remote parameter store.
type ConfigStore interface {
	// Get returns the value stored under the given name. Getting a name
	// that has never been written fails with a ParameterNotFoundError - a
	// missing name is an error, not an empty value.
	Get(ctx context.Context, name string) (string, error)
	// GetMany returns the values for the given names. It never fails on
	// partial misses; found and missing are disjoint and their union covers
	// the requested names, so callers can decide policy.
	GetMany(ctx context.Context, names []string) (found map[string]string, missing []string, err error)
	// Put writes a value under the given name. Putting with overwrite set
	// to false on an existing name is a silent no-op rather than an error,
	// so provisioning code can run repeatedly without clobbering live
	// state.
	Put(ctx context.Context, name, value string, overwrite bool) error
}

// Parameter naming convention: each integration instance keeps three
// logically separate records in the store, all addressed by the function name
// as a shared prefix.

// ParameterConfigName returns the store name of the integration config record
// for a function.
func ParameterConfigName(functionName string) string {
	return fmt.Sprintf("%s_config", functionName)
}

// ParameterStateName returns the store name of the run state record for a
// function.
func ParameterStateName(functionName string) string {
	return fmt.Sprintf("%s_state", functionName)
}

// ParameterAuthName returns the store name of the auth record for a function.
func ParameterAuthName(functionName string) string {
	return fmt.Sprintf("%s_auth", functionName)
}
