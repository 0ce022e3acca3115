/*
Package bazaar defines all common interfaces to weave together the various
subpackages of the marketplace: key value stores and their savepoints,
conditions and addresses used for authorization, handlers and decorators
processing transactions, and the context passed between them.

We pass context through context.Context between app, middleware, and
handlers. Each extension, such as x/sigs, may add its own keys to enrich the
context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. height, chain id).
*/
package bazaar
