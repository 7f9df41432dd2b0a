package mock

import "time"

// FunctionContext provides a fake sable.FunctionContext whose identity,
// function name, and remaining time budget can be set by tests.
type FunctionContext struct {
	Identity  string
	Name      string
	Remaining time.Duration
}

// NewFunctionContext returns a fake execution context for the given function
// name with a generous remaining time budget.
func NewFunctionContext(functionName string) *FunctionContext {
	return &FunctionContext{
		Identity:  "arn:aws:lambda:us-east-1:123456789012:function:" + functionName + ":development",
		Name:      functionName,
		Remaining: 5 * time.Minute,
	}
}

// SetRemaining sets the remaining time budget.
func (c *FunctionContext) SetRemaining(d time.Duration) *FunctionContext {
	c.Remaining = d
	return c
}

// InvokedIdentity returns the configured invoked identity.
func (c *FunctionContext) InvokedIdentity() string {
	return c.Identity
}

// FunctionName returns the configured function name.
func (c *FunctionContext) FunctionName() string {
	return c.Name
}

// RemainingTime returns the configured remaining time budget.
func (c *FunctionContext) RemainingTime() time.Duration {
	return c.Remaining
}
