// Package promise provides a thread-safe, allocation-conscious
// promise/handle pair, a small continuation algebra over it, and a
// multi-shot streaming variant.
//
// A Promise[T] is the producer side of some asynchronous work; a
// Handle[T] is the consumer side. Exactly one of Fulfill, Fail, Finish,
// or FulfillFrom may be called on a Promise, and it must be called
// exactly once (or the Promise explicitly Discarded). Whichever side
// wins the race between installing a continuation and depositing an
// outcome leaves its half in the cell; the side that arrives second
// dispatches directly, inline, on its own goroutine.
//
// A Handle's continuation comes in three shapes:
//
//   - Map: runs only on success, sees the produced value, and produces
//     a new Handle. Upstream failures pass straight through.
//   - MapReports: always runs, sees the raw Report (value-or-error),
//     and is the only continuation that can recover from an error.
//   - Sink: terminal. Runs always, returns nothing, and swallows any
//     error the callback itself raises (subject to the configured
//     Policy).
//
// By default all three run inline, on whichever goroutine triggers
// the dispatch (the depositing producer, or the installing consumer,
// whichever comes second). Passing an Executor routes the callback
// through it instead; Inline is the zero-cost, stateless executor, and
// GoExecutor schedules on a fresh goroutine.
//
// FanIn merges several same-typed Handles into one Handle of their
// reports; FanIn2/FanIn3 do the same for two or three different types,
// since Go generics can't express a true variadic type list. Flatten
// collapses a Handle of a Handle into a single Handle, the usual
// "join" on a nested promise.
//
// NewStream is the multi-shot sibling: a StreamPromise may Push any
// number of times before Complete or Fail, and a StreamHandle installs
// a per-item callback via ForEach, which drains whatever was pushed
// before subscription, in order, before going live.
//
// None of this package cancels in-flight producer work, orders
// continuations by priority, or persists anything: a Handle that's
// dropped without being waited on or followed just stops anyone from
// observing its outcome.
package promise
