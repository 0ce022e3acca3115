/*
Package app assembles the marketplace application.

Every transaction is decoded into a Tx, passed through the middleware
stack (logging, panic recovery, signature verification and a savepoint)
and routed by message path to the handler of one of the extensions.
Market serializes all calls against the store, so counters kept by the
extensions are updated by a single writer.
*/
package app
