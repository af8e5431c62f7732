package promise

import (
	"errors"
	"runtime"
	"strconv"
	"sync"
	"testing"
)

func TestPromiseResolution(t *testing.T) {
	t.Run("Ready handle resolves immediately", func(t *testing.T) {
		h := Ready(42)
		r := h.Wait()
		if !r.Ok() || r.Val() != 42 {
			t.Fatalf("got %v, want ok(42)", r)
		}
	})

	t.Run("Fulfill before Wait", func(t *testing.T) {
		p, h := NewPromise[int]()
		p.Fulfill(7)
		r := h.Wait()
		if !r.Ok() || r.Val() != 7 {
			t.Fatalf("got %v, want ok(7)", r)
		}
	})

	t.Run("Wait before Fulfill", func(t *testing.T) {
		p, h := NewPromise[int]()
		var wg sync.WaitGroup
		wg.Add(1)
		var got Report[int]
		go func() {
			defer wg.Done()
			got = h.Wait()
		}()
		for h.State() != "armed" {
			runtime.Gosched()
		}
		p.Fulfill(9)
		wg.Wait()
		if !got.Ok() || got.Val() != 9 {
			t.Fatalf("got %v, want ok(9)", got)
		}
	})

	t.Run("second Fulfill panics", func(t *testing.T) {
		p, _ := NewPromise[int]()
		p.Fulfill(1)
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic on second Fulfill")
			}
		}()
		p.Fulfill(2)
	})

	t.Run("Discard yields ErrUnfulfilledPromise", func(t *testing.T) {
		p, h := NewPromise[int]()
		p.Discard()
		r := h.Wait()
		if r.Ok() || !errors.Is(r.Err(), ErrUnfulfilledPromise) {
			t.Fatalf("got %v, want ErrUnfulfilledPromise", r)
		}
	})

	t.Run("FulfillFrom tracks a not-yet-resolved Handle", func(t *testing.T) {
		srcP, srcH := NewPromise[int]()
		dstP, dstH := NewPromise[int]()
		dstP.FulfillFrom(srcH)

		done := make(chan struct{})
		go func() {
			srcP.Fulfill(11)
			close(done)
		}()
		<-done

		r := dstH.Wait()
		if !r.Ok() || r.Val() != 11 {
			t.Fatalf("got %v, want ok(11) forwarded from the upstream handle", r)
		}
	})

	t.Run("FulfillFrom forwards a failure", func(t *testing.T) {
		srcP, srcH := NewPromise[int]()
		dstP, dstH := NewPromise[int]()
		dstP.FulfillFrom(srcH)

		go srcP.Fail(errors.New("upstream broke"))

		r := dstH.Wait()
		if r.Ok() || r.Err().Error() != "upstream broke" {
			t.Fatalf("got %v, want forwarded failure", r)
		}
	})
}

func TestContinuations(t *testing.T) {
	t.Run("Map runs on success", func(t *testing.T) {
		h := Ready(3)
		out := Map(h, func(v int) Report[string] {
			return Ok("n=" + strconv.Itoa(v))
		})
		r := out.Wait()
		if !r.Ok() || r.Val() != "n=3" {
			t.Fatalf("got %v", r)
		}
	})

	t.Run("Map skips on upstream failure", func(t *testing.T) {
		called := false
		h := FailedHandle[int](errors.New("boom"))
		out := Map(h, func(v int) Report[string] {
			called = true
			return Ok("unused")
		})
		r := out.Wait()
		if called {
			t.Fatalf("Map callback should not run on upstream failure")
		}
		if r.Ok() || r.Err().Error() != "boom" {
			t.Fatalf("got %v, want failure boom", r)
		}
	})

	t.Run("MapReports recovers from a failure", func(t *testing.T) {
		h := FailedHandle[int](errors.New("boom"))
		out := MapReports(h, func(r Report[int]) Report[int] {
			if !r.Ok() {
				return Ok(-1)
			}
			return r
		})
		r := out.Wait()
		if !r.Ok() || r.Val() != -1 {
			t.Fatalf("got %v, want recovered ok(-1)", r)
		}
	})

	t.Run("Sink always runs", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)
		var seen Report[int]
		h := FailedHandle[int](errors.New("x"))
		h.Sink(func(r Report[int]) {
			seen = r
			wg.Done()
		})
		wg.Wait()
		if seen.Ok() {
			t.Fatalf("expected failed report in sink")
		}
	})
}

func TestCombinators(t *testing.T) {
	t.Run("FanIn merges three same-typed handles", func(t *testing.T) {
		a, b, c := Ready(1), Ready(2), Ready(3)
		out := FanIn(a, b, c)
		r := out.Wait()
		if !r.Ok() {
			t.Fatalf("fanin failed: %v", r.Err())
		}
		reports := r.Val()
		if len(reports) != 3 {
			t.Fatalf("got %d reports, want 3", len(reports))
		}
		sum := 0
		for _, rep := range reports {
			sum += rep.Val()
		}
		if sum != 6 {
			t.Fatalf("sum = %d, want 6", sum)
		}
	})

	t.Run("FanIn2 merges heterogeneous handles", func(t *testing.T) {
		a := Ready(1)
		b := Ready("two")
		out := FanIn2(a, b)
		r := out.Wait()
		if !r.Ok() {
			t.Fatalf("fanin2 failed: %v", r.Err())
		}
		pair := r.Val()
		if pair.A.Val() != 1 || pair.B.Val() != "two" {
			t.Fatalf("got %+v", pair)
		}
	})

	t.Run("Flatten joins a nested handle", func(t *testing.T) {
		inner := Ready(5)
		outer := Ready(inner)
		out := Flatten(outer)
		r := out.Wait()
		if !r.Ok() || r.Val() != 5 {
			t.Fatalf("got %v, want ok(5)", r)
		}
	})

	t.Run("Flatten joins a not-yet-resolved inner handle", func(t *testing.T) {
		innerP, innerH := NewPromise[int]()
		outer := Ready(innerH)
		out := Flatten(outer)

		go innerP.Fulfill(8)

		r := out.Wait()
		if !r.Ok() || r.Val() != 8 {
			t.Fatalf("got %v, want ok(8) once the inner handle resolves", r)
		}
	})

	t.Run("Flatten propagates outer failure", func(t *testing.T) {
		outer := FailedHandle[Handle[int]](errors.New("outer failed"))
		out := Flatten(outer)
		r := out.Wait()
		if r.Ok() || r.Err().Error() != "outer failed" {
			t.Fatalf("got %v", r)
		}
	})
}

func TestStream(t *testing.T) {
	t.Run("push before and after subscribe, in order", func(t *testing.T) {
		sp, sh := NewStream[int](4)
		sp.Push(1)
		sp.Push(2)

		var mu sync.Mutex
		var seen []int
		done := sh.ForEach(func(r Report[int]) {
			mu.Lock()
			seen = append(seen, r.Val())
			mu.Unlock()
		})

		sp.Push(3)
		sp.Complete()

		res := done.Wait()
		if !res.Ok() {
			t.Fatalf("stream ForEach handle failed: %v", res.Err())
		}
		mu.Lock()
		defer mu.Unlock()
		if len(seen) != 3 || seen[0] != 1 || seen[1] != 2 || seen[2] != 3 {
			t.Fatalf("got %v, want [1 2 3] in order", seen)
		}
	})

	t.Run("Fail propagates to the ForEach handle", func(t *testing.T) {
		sp, sh := NewStream[int](4)
		done := sh.ForEach(func(Report[int]) {})
		sp.Push(1)
		sp.Fail(errors.New("stream broke"))
		r := done.Wait()
		if r.Ok() || r.Err().Error() != "stream broke" {
			t.Fatalf("got %v", r)
		}
	})

	t.Run("Push after close errors", func(t *testing.T) {
		sp, _ := NewStream[int](1)
		sp.Complete()
		if err := sp.Push(1); !errors.Is(err, ErrStreamClosed) {
			t.Fatalf("got %v, want ErrStreamClosed", err)
		}
	})

	t.Run("live consumer can Push reentrantly without deadlock", func(t *testing.T) {
		sp, sh := NewStream[int](4)
		done := sh.ForEach(func(r Report[int]) {
			if r.Val() == 1 {
				sp.Push(2)
				sp.Complete()
			}
		})
		sp.Push(1)
		if r := done.Wait(); !r.Ok() {
			t.Fatalf("stream ForEach handle failed: %v", r.Err())
		}
	})
}
