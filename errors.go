package promise

import "fmt"

// errContractViolation marks a programmer error: using a Promise,
// Handle, stream, or cell in a way its single-use contract forbids
// (resolving a Promise twice, installing a second continuation while
// the first is still pending, closing a stream twice, subscribing to a
// stream twice). These panic rather than return an error, the same way
// a double close on a channel panics instead of erroring — the
// caller's own bookkeeping is broken, not the data it's operating on.
// A second continuation installed after the cell has already resolved
// is not detected: it runs against the stored outcome like the first.
type errContractViolation struct {
	reason string
}

func (e errContractViolation) Error() string {
	return "promise: contract violation: " + e.reason
}

// ErrUnfulfilledPromise is the error a Handle observes when its
// Promise was Discarded without ever being fulfilled, finished, or
// failed. It stands in for the automatic "broken promise" outcome that
// a language with deterministic destructors would synthesize on scope
// exit; Go has no destructors, so a Promise only produces this outcome
// when Discard is called explicitly (see Promise.Discard). A Promise
// that is simply dropped is not detected: no finalizer is registered,
// and its Handle stays unresolved.
var ErrUnfulfilledPromise = fmt.Errorf("promise: unfulfilled promise")

// ErrStreamClosed is returned by StreamPromise.Push when the stream
// has already been Completed or Failed.
var ErrStreamClosed = fmt.Errorf("promise: stream already closed")

// Policy controls what happens when a callback supplied to Sink (or to
// a Map/MapReports continuation with no further continuation chained
// off it) panics. It is the package-level equivalent of the per-Group
// UncaughtPanicHandler/UncaughtErrorHandler hooks a supervised-pipeline
// model would use.
type Policy int

const (
	// PolicyIgnore silently drops the panic/error. The default.
	PolicyIgnore Policy = iota
	// PolicyLog reports the panic/error to the configured Logger.
	PolicyLog
	// PolicyAbort re-panics on the goroutine that observed it, after
	// giving the configured Logger a chance to record it.
	PolicyAbort
)

// Logger is the minimal structured-logging surface this package calls
// out to under PolicyLog/PolicyAbort. *slog.Logger satisfies it.
type Logger interface {
	Error(msg string, args ...any)
}

var defaultPolicy = PolicyIgnore
var defaultLogger Logger = noopLogger{}

type noopLogger struct{}

func (noopLogger) Error(string, ...any) {}

func recoverPanicPolicy(logger Logger, policy Policy, where string) {
	r := recover()
	if r == nil {
		return
	}
	switch policy {
	case PolicyLog:
		logger.Error("promise: recovered panic in callback", "where", where, "panic", r)
	case PolicyAbort:
		logger.Error("promise: re-panicking after callback panic", "where", where, "panic", r)
		panic(r)
	}
}
