/*
Package paramstore provides typed access to the durable records an
integration instance keeps in SSM Parameter Store.

BasicConfigStore, BasicStateTracker, and BasicCredentialProvider provide
abstractions over the store's get/put API without needing to make direct
calls to perform frequently-used operations.

The BasicParameterStoreClient wraps the Parameter Store API itself. If the
higher-level interfaces do not fulfill your needs, you can make API calls
directly through it instead.
*/
package paramstore
