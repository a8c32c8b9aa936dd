package solver

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestConvergence(t *testing.T) {
	tests := []struct {
		name   string
		f      func(float64) float64
		x0, x1 float64
		want   float64
	}{
		{"sqrt2", func(x float64) float64 { return x*x - 2 }, 0, 2, math.Sqrt2},
		{"cube root of 8", func(x float64) float64 { return x*x*x - 8 }, 0, 3, 2},
		{"cos fixed point", func(x float64) float64 { return math.Cos(x) - x }, 0, 1, 0.7390851332151607},
		{"bond ytm", func(x float64) float64 { return 105/math.Pow(1+x, 3) - 99.5 }, -0.9, 10, math.Pow(105/99.5, 1./3.) - 1},
	}

	for _, tt := range tests {
		res, err := Brent(FuncOf(tt.f), tt.x0, tt.x1, DefaultMaxIter, DefaultTolerance, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if math.Abs(res.Root-tt.want) > 1e-9 {
			t.Errorf("%s: root = %v, want %v", tt.name, res.Root, tt.want)
		}
		if res.Iterations > DefaultMaxIter {
			t.Errorf("%s: took %d iterations, budget is %d", tt.name, res.Iterations, DefaultMaxIter)
		}
	}
}

func TestInvalidBracket(t *testing.T) {
	calls := 0
	f := FuncOf(func(x float64) float64 {
		calls++
		return x*x + 1 // positive everywhere
	})

	_, err := Brent(f, -3, 3, DefaultMaxIter, DefaultTolerance, nil)
	if !errors.Is(err, ErrInvalidBracket) {
		t.Fatalf("expected ErrInvalidBracket, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 evaluations before rejection, got %d", calls)
	}
}

func TestDeterminism(t *testing.T) {
	f := FuncOf(func(x float64) float64 { return math.Exp(x) - 3*x })

	first, err := Brent(f, 0, 1, DefaultMaxIter, DefaultTolerance, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Brent(f, 0, 1, DefaultMaxIter, DefaultTolerance, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("repeated solve diverged: %+v vs %+v", first, second)
	}
}

func TestZeroMaxIter(t *testing.T) {
	f := FuncOf(func(x float64) float64 { return x*x - 2 })

	res, err := Brent(f, 0, 2, 0, DefaultTolerance, nil)
	if err != nil {
		t.Fatal(err)
	}
	// |f(0)| = |f(2)|, so no initial swap: x1 stays 2
	if res.Root != 2 || res.Iterations != 0 {
		t.Errorf("got (%v, %d), want (2, 0)", res.Root, res.Iterations)
	}
}

func TestBracketAlreadyWithinTolerance(t *testing.T) {
	calls := 0
	f := FuncOf(func(x float64) float64 {
		calls++
		return x - 1
	})

	res, err := Brent(f, 1, 1+1e-13, DefaultMaxIter, DefaultTolerance, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Iterations != 0 {
		t.Errorf("loop body ran %d times on a sub-tolerance bracket", res.Iterations)
	}
	if res.Root != 1 { // f(1) = 0 beats f(1+1e-13), so the swap makes it the estimate
		t.Errorf("root = %v, want 1", res.Root)
	}
	if calls != 2 {
		t.Errorf("expected only the 2 entry evaluations, got %d", calls)
	}
}

func TestLinearFunction(t *testing.T) {
	f := FuncOf(func(x float64) float64 { return x - 5 })

	res, err := Brent(f, 0, 10, DefaultMaxIter, DefaultTolerance, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Root != 5 {
		t.Errorf("root = %v, want exactly 5", res.Root)
	}
	if res.Iterations > DefaultMaxIter {
		t.Errorf("took %d iterations, budget is %d", res.Iterations, DefaultMaxIter)
	}
}

func TestFlatObjectiveFallsBackToBisection(t *testing.T) {
	// identically zero ordinates make every secant denominator vanish; the
	// NaN candidates must degrade to midpoint steps instead of escaping
	f := FuncOf(func(x float64) float64 { return 0 })

	res, err := Brent(f, 0, 1, DefaultMaxIter, DefaultTolerance, nil)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(res.Root) || res.Root < 0 || res.Root > 1 {
		t.Errorf("root = %v, want a finite point inside [0, 1]", res.Root)
	}
}

func TestOnIterTrace(t *testing.T) {
	f := FuncOf(func(x float64) float64 { return x*x - 2 })

	var trace []Iter
	res, err := Brent(f, 0, 2, DefaultMaxIter, DefaultTolerance, func(it Iter) error {
		trace = append(trace, it)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(trace) != res.Iterations {
		t.Fatalf("recorded %d iterations, result reports %d", len(trace), res.Iterations)
	}
	for i, it := range trace {
		if it.K != i+1 {
			t.Errorf("iteration %d carries counter %d", i, it.K)
		}
	}
	if last := trace[len(trace)-1]; last.X1 != res.Root {
		t.Errorf("final trace estimate %v does not match returned root %v", last.X1, res.Root)
	}
}

func TestOnIterStop(t *testing.T) {
	f := FuncOf(func(x float64) float64 { return x*x - 2 })

	res, err := Brent(f, 0, 2, DefaultMaxIter, DefaultTolerance, func(it Iter) error {
		if it.K == 3 {
			return ErrStopped
		}
		return nil
	})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if res.Iterations != 3 {
		t.Errorf("stopped after %d iterations, want 3", res.Iterations)
	}
}

type failingFunc struct {
	calls, failAt int
}

func (f *failingFunc) Eval(x float64) (float64, error) {
	f.calls++
	if f.calls >= f.failAt {
		return math.NaN(), fmt.Errorf("evaluation %d failed", f.calls)
	}
	return x*x - 2, nil
}

func TestEvalErrorPropagates(t *testing.T) {
	f := &failingFunc{failAt: 4}

	_, err := Brent(f, 0, 2, DefaultMaxIter, DefaultTolerance, nil)
	if err == nil {
		t.Fatal("expected the objective error to propagate")
	}
	if errors.Is(err, ErrInvalidBracket) {
		t.Fatalf("objective failure misreported as %v", err)
	}
}
