/*
Package mock provides mock implementations of interfaces for testing
purposes.

The ParameterStoreClient and FunctionClient can be used for running tests
without relying on a real parameter store or function invocation service.
*/
package mock
