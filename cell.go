package promise

import (
	"github.com/nyra-systems/vfuture/internal/phase"
)

// cell is the single shared state machine backing one Promise/Handle
// pair. It carries exactly one outcome, once, through one of three
// terminal phases:
//
//   - HasValues: fulfill(v) was called; the outcome is Ok(v).
//   - HasReports: finish(r) was called; the outcome is r as given.
//   - HasError: fail(err) was called; the outcome is Failed(err).
//
// Whichever of {a deposit, an installed continuation} arrives second
// drives the dispatch: if install arrives first the cell parks in
// Armed and the depositing call (fulfill/finish/fail) invokes the
// installed continuation directly, inline, on its own goroutine; if a
// deposit arrives first the cell parks in its terminal phase and the
// installing call invokes the continuation itself, inline, against the
// already-stored outcome. Either way the continuation runs exactly
// once, on whichever goroutine lost the race to get there first.
//
// A continuation is stored as a single closure over Report[T] rather
// than as a separate handler object: Map, MapReports and Sink each
// build that closure at install time, baking in the user callback, the
// downstream cell (for Map/MapReports) and the executor. That keeps
// installing a continuation to one allocation (the closure itself)
// instead of a handler struct plus a downstream pointer plus a second
// indirection to reach it.
type cell[T any] struct {
	word phase.Word

	dispatch func(Report[T])
	out      Report[T]
}

func newCell[T any]() *cell[T] {
	return &cell[T]{word: phase.New()}
}

// fulfill deposits a successful value. Equivalent to finish(Ok(v)).
func (c *cell[T]) fulfill(v T) {
	c.deposit(Ok(v), phase.HasValues)
}

// finish deposits a raw Report, preserving whatever value/error split
// the caller already computed.
func (c *cell[T]) finish(r Report[T]) {
	c.deposit(r, phase.HasReports)
}

// fail deposits a failure. Equivalent to finish(Failed[T](err)).
func (c *cell[T]) fail(err error) {
	c.deposit(Failed[T](err), phase.HasError)
}

func (c *cell[T]) deposit(r Report[T], target phase.Phase) {
	// out is written *before* the phase transition publishes: TryDeposit
	// releases the phase word's lock, which is what makes the new phase
	// visible to a concurrently-spinning install() on another goroutine.
	// Writing out first guarantees that by the time any goroutine can
	// observe the new phase, out already holds this value — the same
	// ordering a plain sync.Mutex would give "protected field, then
	// Unlock", just expressed through the phase word's own release
	// instead of a second lock.
	c.out = r
	if ok, raw := c.word.TryDeposit(target); ok {
		assertDebug(phase.Of(raw) == phase.Pending, debugDepositOnPending, "TryDeposit succeeded from a non-Pending phase")
		return
	} else if phase.Of(raw) != phase.Armed {
		panic(errContractViolation{"deposit on an already-resolved cell"})
	}

	// The cell is Armed: a continuation beat this deposit to install.
	// Hand the report straight to it and clear the phase ourselves.
	assertDebug(c.dispatch != nil, debugDepositOnArmed, "Armed cell has no installed dispatch")
	d := c.dispatch
	c.dispatch = nil
	if ok, _ := c.word.ClearArmed(target); !ok {
		panic(errContractViolation{"internal: armed cell lost its handler"})
	}
	d(r)
}

// install attaches a continuation closure. If the cell is still
// Pending, the closure is stored and will run later, inline, on
// whichever goroutine eventually deposits. If the cell has already
// resolved, d runs immediately, inline, against the stored outcome.
// Installing twice is a contract violation: a cell supports exactly
// one continuation.
func (c *cell[T]) install(d func(Report[T])) {
	// dispatch is written *before* TryArm publishes Armed, for the same
	// reason deposit writes out before TryDeposit: a racing deposit()
	// on another goroutine must never observe phase Armed before it can
	// also observe this dispatch.
	c.dispatch = d
	if ok, raw := c.word.TryArm(); ok {
		assertDebug(phase.Of(raw) == phase.Pending, debugInstallOnPending, "TryArm succeeded from a non-Pending phase")
		return
	} else if phase.Of(raw) == phase.Armed {
		panic(errContractViolation{"a continuation is already installed on this cell"})
	}
	assertDebug(phase.Of(c.word.Load()) != phase.Pending, debugInstallOnResolved, "install fell through to dispatch on a still-Pending cell")
	d(c.out)
}

// phaseOf reports the cell's current phase, for diagnostics and tests.
func (c *cell[T]) phaseOf() phase.Phase {
	return phase.Of(c.word.Load())
}
