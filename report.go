package promise

import "fmt"

// Report is the value-or-error outcome of a single slot: the shape
// every consumer-facing error-visible API (MapReports, fan-in, stream
// items) sees instead of a bare T.
type Report[T any] struct {
	val T
	err error
}

// Ok wraps a successful value as a Report.
func Ok[T any](v T) Report[T] {
	return Report[T]{val: v}
}

// Failed wraps an error as a Report. Passing a nil err produces the
// same Report as Ok(zero value of T) — callers that need to
// distinguish "no error" from "unset" should check Err() explicitly
// rather than relying on a nil err here.
func Failed[T any](err error) Report[T] {
	return Report[T]{err: err}
}

// ReportOf builds a Report from a (value, error) pair, the shape most
// Go functions already return. Unlike Failed, val is kept alongside a
// non-nil err: a returned value isn't always meaningless just because
// an error also came back (io.EOF being the canonical example).
func ReportOf[T any](v T, err error) Report[T] {
	return Report[T]{val: v, err: err}
}

// Val returns the carried value. It's the zero value of T if Err is
// non-nil and the caller didn't deliberately pair a value with it.
func (r Report[T]) Val() T { return r.val }

// Err returns the carried error, or nil on success.
func (r Report[T]) Err() error { return r.err }

// Ok reports whether this Report carries a successful outcome.
func (r Report[T]) Ok() bool { return r.err == nil }

// Unwrap returns the (value, error) pair, mirroring the convention
// most Go call sites already expect.
func (r Report[T]) Unwrap() (T, error) { return r.val, r.err }

func (r Report[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("error(%v)", r.err)
	}
	return fmt.Sprintf("ok(%v)", r.val)
}

// firstError returns the first non-nil error among reports, in order,
// and whether one was found. This is the "left-to-right first error
// wins" rule a Map continuation applies when its upstream finished
// with a mix of values and errors.
func firstError[T any](reports []Report[T]) (error, bool) {
	for _, r := range reports {
		if r.err != nil {
			return r.err, true
		}
	}
	return nil, false
}

// Values collects the successful values out of a slice of Reports —
// the shape FanIn produces — applying the same left-to-right
// first-error-wins rule as Map: if any Report failed, the first such
// error is returned and vals is nil; otherwise vals holds every value,
// in order, and err is nil. A typical use chains it after FanIn:
//
//	out := Map(FanIn(a, b, c), func(reports []Report[int]) Report[[]int] {
//	    vals, err := Values(reports)
//	    return ReportOf(vals, err)
//	})
func Values[T any](reports []Report[T]) (vals []T, err error) {
	if err, found := firstError(reports); found {
		return nil, err
	}
	vals = make([]T, len(reports))
	for i, r := range reports {
		vals[i] = r.val
	}
	return vals, nil
}
