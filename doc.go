/*
Package sable provides interfaces to run application integration pollers -
scheduled jobs that periodically collect data from third-party services,
persist their progress in a remote parameter store, and hand the collected
data off to a downstream processing function.

The ConfigStore, StateTracker, and CredentialProvider interfaces provide
typed access to the durable records each integration instance keeps in the
parameter store. The Dispatcher interface hands collected data off for
downstream processing without needing to make direct calls to the function
invocation API.

The ParameterStoreClient and FunctionClient interfaces provide convenience
wrappers around the parameter store and function invocation APIs. If the
higher-level interfaces do not fulfill your needs, you can make API calls
directly through them instead.
*/
package sable
