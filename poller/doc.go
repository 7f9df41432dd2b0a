/*
Package poller drives poll cycles for application integration instances.

A BasicPoller owns one integration instance's cycle lifecycle: on each
schedule tick it loads the instance's config, run state, and credentials from
the parameter store, fetches data from the integration endpoint, hands the
data off through a dispatcher, and checkpoints its progress. A cycle that
fails at any stage checkpoints a failed state with the fetch window
unchanged, so the next tick retries the same window - cycles are
at-least-once, never lost.
*/
package poller
