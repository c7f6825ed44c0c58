/*
Package accrue defines the common interfaces that tie the interest
bearing token module together with its storage and execution stack.

The root package holds only contracts and small value types: the
KVStore family of interfaces, the Tx/Msg/Handler processing contracts,
addresses and conditions, and context helpers carrying per-call
information such as the block time. Implementations live in the
subpackages (store, orm, app) and the token logic itself is the x/drip
extension.

We pass context through context.Context between app, middleware and
handlers. For every value XYZ of type T stored in the context there
are two functions:

  WithXYZ(Context, T) Context
  XYZ(Context) (val T, ok bool)
*/
package accrue
