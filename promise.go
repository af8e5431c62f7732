package promise

import "sync/atomic"

// Promise is the producer side of a cell. Exactly one of Fulfill,
// Fail, Finish, FulfillFrom, or Discard may be called on a Promise, and each
// must be called at most once; a second call panics with a contract
// violation, the same way writing to an already-closed channel does.
type Promise[T any] struct {
	c    *cell[T]
	used atomic.Bool
}

// NewPromise creates a linked Promise/Handle pair, both initially
// Pending.
func NewPromise[T any]() (*Promise[T], Handle[T]) {
	c := newCell[T]()
	return &Promise[T]{c: c}, Handle[T]{c: c}
}

func (p *Promise[T]) claim() {
	if !p.used.CompareAndSwap(false, true) {
		panic(errContractViolation{"Promise already resolved or discarded"})
	}
}

// Fulfill resolves the Promise with a successful value.
func (p *Promise[T]) Fulfill(v T) {
	p.claim()
	p.c.fulfill(v)
}

// Fail resolves the Promise with a failure.
func (p *Promise[T]) Fail(err error) {
	p.claim()
	p.c.fail(err)
}

// Finish resolves the Promise from an already-computed Report,
// preserving whatever value/error split the caller computed itself.
func (p *Promise[T]) Finish(r Report[T]) {
	p.claim()
	p.c.finish(r)
}

// FulfillFrom bridges a not-yet-resolved Handle into this Promise: it
// installs a terminal continuation on h that forwards whatever Report
// h eventually produces into this Promise's cell. This is the way to
// hand a late-bound upstream over to a Promise of a different type or
// a different producer than the one that created it, rather than
// always having a value already in hand to Fulfill/Fail with. Calling
// FulfillFrom claims the Promise immediately, even though the actual
// resolution happens later, whenever h resolves.
func (p *Promise[T]) FulfillFrom(h Handle[T]) {
	p.claim()
	h.c.install(func(r Report[T]) {
		p.c.finish(r)
	})
}

// Discard resolves the Promise's Handle with ErrUnfulfilledPromise,
// without ever producing a value. This is the explicit stand-in for
// the "drop without fulfilling" outcome a language with deterministic
// destructors synthesizes automatically on scope exit; Go has no
// destructor to hook, so callers that abandon a Promise without
// resolving it must call Discard to let any waiting consumer observe
// that outcome rather than block forever.
func (p *Promise[T]) Discard() {
	p.claim()
	p.c.fail(ErrUnfulfilledPromise)
}

// Ready returns a Handle already resolved with a successful value, for
// tests and call sites that need to hand over a value through the same
// API as an asynchronous one.
func Ready[T any](v T) Handle[T] {
	c := newCell[T]()
	c.fulfill(v)
	return Handle[T]{c: c}
}

// ReadyReports returns a Handle already resolved with the given
// Report.
func ReadyReports[T any](r Report[T]) Handle[T] {
	c := newCell[T]()
	c.finish(r)
	return Handle[T]{c: c}
}

// FailedHandle returns a Handle already resolved with a failure.
func FailedHandle[T any](err error) Handle[T] {
	c := newCell[T]()
	c.fail(err)
	return Handle[T]{c: c}
}
