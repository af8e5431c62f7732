package promise

// Handle is the consumer side of a Promise. It is not safe to install
// more than one continuation (Map, MapReports, Sink, or Wait) against
// the same Handle — exactly one of them may be called, exactly once,
// the same single-continuation contract the underlying cell enforces.
type Handle[T any] struct {
	c *cell[T]
}

// Wait blocks until the Handle resolves and returns its outcome. It is
// implemented as a continuation install like any other: internally it
// installs a continuation that hands the Report to a 1-buffered channel, then
// blocks receiving from it. That means Wait shares the same
// single-install contract as Map/MapReports/Sink — it cannot be
// combined with another continuation on the same Handle.
func (h Handle[T]) Wait() Report[T] {
	return <-h.WaitChan()
}

// WaitChan returns the same 1-buffered channel Wait blocks on, for
// callers that want to select against other channels instead of
// blocking outright. Like Wait, it installs a continuation, so it
// shares the same single-install contract as Map/MapReports/Sink.
func (h Handle[T]) WaitChan() <-chan Report[T] {
	ch := make(chan Report[T], 1)
	h.c.install(func(r Report[T]) {
		ch <- r
	})
	return ch
}

// State reports the Handle's current phase, for diagnostics and tests.
// It observes a moment in time; a Pending or Armed result can change
// concurrently.
func (h Handle[T]) State() string {
	return h.c.phaseOf().String()
}
