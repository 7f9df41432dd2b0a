/*
Package dispatch provides the hand-off of collected integration data to a
downstream processing function.

BasicDispatcher validates dispatch requests before sending and translates
invocation failures into the sable error taxonomy. The BasicFunctionClient
wraps the function invocation API itself.
*/
package dispatch
