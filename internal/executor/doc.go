// Package executor implements a reactive GraphQL query executor: given a
// parsed document, a schema with optional per-field resolvers, and a set of
// bindings whose values may be live streams, it produces a continuously
// updating result stream that re-emits a freshly computed envelope whenever
// any underlying source changes. With only single-shot sources it degenerates
// to a conventional executor that emits one envelope and completes.
//
// # Execution model
//
// Execution walks the selection tree recursively. For every field the
// executor:
//
//  1. Looks up the field definition on the owning type; an undeclared field
//     terminates the stream with a FieldNotFoundError.
//  2. Materializes the argument record. Literals become constant streams;
//     variable references are resolved from the bindings, where a bound
//     stream stays live and an absent binding resolves to nil.
//  3. Switches on the argument-record stream: for every record emission the
//     field value is obtained through the declared resolver when present,
//     otherwise by extracting the same-named property from the parent value.
//     The resolver result is lifted to a stream uniformly, so a resolver may
//     return either a plain value or an already-live stream.
//  4. Recurses: a list-typed field with a selection set fans out per element
//     and rejoins order-preserving; an object-typed field feeds its resolved
//     value as the parent of a nested selection set; a leaf passes through.
//
// Each selection set subscribes its parent stream exactly once; a parent
// emission rebuilds every sibling field pipeline against the new parent value
// before the siblings are remerged with n-ary combine-latest. One emission of
// a source shared by several fields therefore produces exactly one merged
// re-emission, never a partial object mixing values from different parent
// emissions. Within one parent generation the result object re-emits whenever
// any single field emits, carrying the latest known value of every other
// field, and first emits only once every field has produced a value. There is
// no incremental diffing: every emission is a full recomputation from the
// latest values.
//
// # Context
//
// The bindings map doubles as the execution context. It is a single mutable
// reference threaded through every resolver invocation of one operation, in
// depth-first order, so later-invoked resolvers observe the cumulative
// mutations of earlier ones. It is created (or adopted from the caller) per
// ExecuteRequest and shared with nothing else.
//
// # Errors
//
// Two faults exist: FieldNotFoundError and ResolverThrowError. Both are
// terminal; the first error anywhere in the tree propagates through every
// combine-latest boundary and aborts the whole operation stream. There are no
// partial results and no error aggregation. A resolver can never raise out of
// the executor synchronously: returned errors and panics are converted into
// error-terminating streams at the single point of invocation.
//
// # Concurrency and cancellation
//
// All work happens synchronously inside emission callbacks on the producing
// goroutine; the executor introduces no goroutines, reordering or batching.
// Unsubscribing the result stream propagates cancellation to every
// subscription created during execution: argument streams, resolver-returned
// streams, and all recursive child executions. A source that never emits
// simply never completes the first combine-latest tuple, which stalls the
// operation; that is backpressure, not a fault.
//
// Resolver calls are not cached or deduplicated across emissions: every
// upstream change re-invokes the resolvers below it. Batching and caching
// belong to the resolver layer.
package executor
