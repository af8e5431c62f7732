package promise

import (
	"errors"
	"testing"
)

func TestReport(t *testing.T) {
	t.Run("constructors", func(t *testing.T) {
		ok := Ok(5)
		if !ok.Ok() || ok.Val() != 5 || ok.Err() != nil {
			t.Fatalf("Ok(5) = %+v", ok)
		}

		err := errors.New("bad")
		failed := Failed[int](err)
		if failed.Ok() || failed.Err() != err {
			t.Fatalf("Failed(err) = %+v", failed)
		}

		combo := ReportOf(3, err)
		if combo.Ok() || combo.Val() != 3 || combo.Err() != err {
			t.Fatalf("ReportOf(3, err) = %+v", combo)
		}
	})

	t.Run("Unwrap", func(t *testing.T) {
		v, err := Ok("x").Unwrap()
		if v != "x" || err != nil {
			t.Fatalf("got (%q, %v)", v, err)
		}
	})

	t.Run("firstError wins left to right", func(t *testing.T) {
		first := errors.New("first")
		second := errors.New("second")
		reports := []Report[int]{Ok(1), Failed[int](first), Failed[int](second)}
		err, found := firstError(reports)
		if !found || err != first {
			t.Fatalf("got (%v, %v), want first error", err, found)
		}
	})

	t.Run("firstError none found", func(t *testing.T) {
		reports := []Report[int]{Ok(1), Ok(2)}
		_, found := firstError(reports)
		if found {
			t.Fatalf("expected no error found")
		}
	})

	t.Run("Values all ok", func(t *testing.T) {
		vals, err := Values([]Report[int]{Ok(1), Ok(2), Ok(3)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vals) != 3 || vals[0] != 1 || vals[1] != 2 || vals[2] != 3 {
			t.Fatalf("got %v", vals)
		}
	})

	t.Run("Values first error wins", func(t *testing.T) {
		first := errors.New("first")
		vals, err := Values([]Report[int]{Ok(1), Failed[int](first), Failed[int](errors.New("second"))})
		if vals != nil {
			t.Fatalf("expected nil vals on error, got %v", vals)
		}
		if err != first {
			t.Fatalf("got %v, want first error", err)
		}
	})
}
