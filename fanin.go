package promise

import "sync/atomic"

// FanIn merges same-typed Handles into a single Handle of their
// Reports, in argument order. It resolves once every input has
// resolved; resolution order among the inputs is unconstrained. The
// last arrival drives the fulfill: each installed continuation writes
// its own slot, then atomically decrements a shared counter, and
// whichever decrement reaches zero is guaranteed — by the same
// happens-before guarantee sync/atomic gives a WaitGroup — to observe
// every other slot's write.
func FanIn[T any](handles ...Handle[T]) Handle[[]Report[T]] {
	p, out := NewPromise[[]Report[T]]()
	n := len(handles)
	if n == 0 {
		p.Fulfill(nil)
		return out
	}

	reports := make([]Report[T], n)
	var remaining atomic.Int64
	remaining.Store(int64(n))
	for i, h := range handles {
		i, h := i, h
		h.c.install(func(r Report[T]) {
			reports[i] = r
			if remaining.Add(-1) == 0 {
				p.Fulfill(reports)
			}
		})
	}
	return out
}

// Reports2 is the fixed-arity fan-in outcome for two differently typed
// Handles. Go generics have no variadic type parameter list, so
// heterogeneous fan-in is monomorphised per arity instead of expressed
// once for arbitrary N.
type Reports2[A, B any] struct {
	A Report[A]
	B Report[B]
}

// FanIn2 merges two differently typed Handles into one Handle of their
// paired Reports, resolving once both have resolved.
func FanIn2[A, B any](ha Handle[A], hb Handle[B]) Handle[Reports2[A, B]] {
	p, out := NewPromise[Reports2[A, B]]()
	var remaining atomic.Int64
	remaining.Store(2)
	var acc Reports2[A, B]
	ha.c.install(func(r Report[A]) {
		acc.A = r
		if remaining.Add(-1) == 0 {
			p.Fulfill(acc)
		}
	})
	hb.c.install(func(r Report[B]) {
		acc.B = r
		if remaining.Add(-1) == 0 {
			p.Fulfill(acc)
		}
	})
	return out
}

// Reports3 is the fixed-arity fan-in outcome for three differently
// typed Handles.
type Reports3[A, B, C any] struct {
	A Report[A]
	B Report[B]
	C Report[C]
}

// FanIn3 merges three differently typed Handles into one Handle of
// their Reports, resolving once all three have resolved.
func FanIn3[A, B, C any](ha Handle[A], hb Handle[B], hc Handle[C]) Handle[Reports3[A, B, C]] {
	p, out := NewPromise[Reports3[A, B, C]]()
	var remaining atomic.Int64
	remaining.Store(3)
	var acc Reports3[A, B, C]
	ha.c.install(func(r Report[A]) {
		acc.A = r
		if remaining.Add(-1) == 0 {
			p.Fulfill(acc)
		}
	})
	hb.c.install(func(r Report[B]) {
		acc.B = r
		if remaining.Add(-1) == 0 {
			p.Fulfill(acc)
		}
	})
	hc.c.install(func(r Report[C]) {
		acc.C = r
		if remaining.Add(-1) == 0 {
			p.Fulfill(acc)
		}
	})
	return out
}

// Flatten collapses a Handle of a Handle into a single Handle: the
// usual monadic join. If the outer Handle fails, the result fails with
// the same error without ever looking at the inner Handle. Otherwise
// the result tracks the inner Handle's own eventual outcome, via
// FulfillFrom — the inner Handle need not have resolved yet.
func Flatten[T any](h Handle[Handle[T]]) Handle[T] {
	p, out := NewPromise[T]()
	h.c.install(func(r Report[Handle[T]]) {
		if !r.Ok() {
			p.Fail(r.Err())
			return
		}
		p.FulfillFrom(r.Val())
	})
	return out
}
