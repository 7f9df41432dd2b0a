package sable

import "time"

// FunctionContext exposes the execution context of the scheduled function
// invocation that owns the current poll cycle. Exactly one scheduled
// invocation per tick owns a given function name and its state records, so
// read-decide-write sequences against the store need no lock.
type FunctionContext interface {
	// InvokedIdentity is the full identity the function was invoked as.
	InvokedIdentity() string
	// FunctionName is the name of the running function. It is the shared
	// prefix of the instance's parameter records.
	FunctionName() string
	// RemainingTime is the execution time budget left for the current
	// invocation.
	RemainingTime() time.Duration
}
