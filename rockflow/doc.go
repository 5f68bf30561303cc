// Package rockflow bridges compiled script code to host-owned context
// objects. A host implements Context (and optionally ItemSource); the
// Engine registers one builtin per accessor under the rockflow_context
// namespace so call sites such as
//
//	rockflow_context.get_int(ctx, "age", -1)
//
// can be type-checked against declared signatures and dispatched to the
// host implementation at run time.
//
// The layer performs no coercion, allocation of attribute keys, locking, or
// cancellation of its own. Missing attributes resolve to the caller-supplied
// default rather than an error.
package rockflow
