package solver

import (
	"errors"
	"math"
)

const DefaultMaxIter = 50
const DefaultTolerance = 1e-12

var ErrInvalidBracket = errors.New("solver: f(x0) and f(x1) must have opposite signs")

// ErrStopped aborts the solve from an OnIter callback.
var ErrStopped = errors.New("solver: stopped by callback")

// Func is the objective under search. The solver treats it as pure:
// the same argument always yields the same value within one solve.
type Func interface {
	Eval(x float64) (float64, error)
}

type plainFunc func(float64) float64

func (f plainFunc) Eval(x float64) (float64, error) { return f(x), nil }

// FuncOf adapts an ordinary function to Func.
func FuncOf(f func(float64) float64) Func { return plainFunc(f) }

// Iter describes one completed iteration.
type Iter struct {
	K        int     // 1-based iteration counter
	X0, X1   float64 // bracket after the update; X1 is the current best estimate
	X        float64 // point introduced this iteration
	FX       float64
	Bisected bool // the candidate was rejected and the midpoint taken instead
}

type Result struct {
	Root       float64
	Iterations int
}

// Brent finds a root of f between x0 and x1 by Brent's method: inverse
// quadratic interpolation through the three most recent points, a secant step
// when two of the ordinates coincide, and a bisection fallback whenever the
// candidate fails the acceptance test. f(x0) and f(x1) must differ in sign
// (a zero at either endpoint counts). Iteration stops once the bracket is
// narrower than tolerance or maxIter iterations have run; the residual is
// never consulted, so an exact root at an endpoint still iterates until the
// interval closes. Pass DefaultMaxIter and DefaultTolerance for the usual
// budget. onIter, if non-nil, sees every completed iteration and may abort
// the solve by returning an error (ErrStopped for a plain stop).
func Brent(f Func, x0, x1 float64, maxIter int, tolerance float64, onIter func(Iter) error) (Result, error) {
	fx0, err := f.Eval(x0)
	if err != nil {
		return Result{}, err
	}
	fx1, err := f.Eval(x1)
	if err != nil {
		return Result{}, err
	}
	if fx0*fx1 > 0 {
		return Result{}, ErrInvalidBracket
	}

	// x1 carries the smaller-magnitude ordinate from here on
	if math.Abs(fx0) < math.Abs(fx1) {
		x0, x1 = x1, x0
		fx0, fx1 = fx1, fx0
	}

	x2, fx2 := x0, fx0 // best estimate of the previous iteration
	var d float64      // x2 of the iteration before that; valid once mflag has been false
	mflag := true
	steps := 0

	for steps < maxIter && math.Abs(x1-x0) > tolerance {
		var next float64
		if fx0 != fx2 && fx1 != fx2 {
			// inverse quadratic interpolation through (x0,fx0), (x1,fx1), (x2,fx2)
			l0 := x0 * fx1 * fx2 / ((fx0 - fx1) * (fx0 - fx2))
			l1 := x1 * fx0 * fx2 / ((fx1 - fx0) * (fx1 - fx2))
			l2 := x2 * fx1 * fx0 / ((fx2 - fx0) * (fx2 - fx1))
			next = l0 + l1 + l2
		} else {
			next = x1 - fx1*(x1-x0)/(fx1-fx0)
		}

		// a NaN candidate (zero denominator above) must not slip through the
		// range check, NaN comparisons being false
		if math.IsNaN(next) ||
			next < (3*x0+x1)/4 || next > x1 ||
			(mflag && math.Abs(next-x1) >= math.Abs(x1-x2)/2) ||
			(!mflag && math.Abs(next-x1) >= math.Abs(x2-d)/2) ||
			(mflag && math.Abs(x1-x2) < tolerance) ||
			(!mflag && math.Abs(x2-d) < tolerance) {
			next = (x0 + x1) / 2
			mflag = true
		} else {
			mflag = false
		}

		fnext, err := f.Eval(next)
		if err != nil {
			return Result{Root: x1, Iterations: steps}, err
		}
		d = x2
		x2, fx2 = x1, fx1
		if fx0*fnext < 0 {
			x1, fx1 = next, fnext
		} else {
			x0, fx0 = next, fnext
		}
		if math.Abs(fx0) < math.Abs(fx1) {
			x0, x1 = x1, x0
			fx0, fx1 = fx1, fx0
		}
		steps++

		if onIter != nil {
			if err := onIter(Iter{K: steps, X0: x0, X1: x1, X: next, FX: fnext, Bisected: mflag}); err != nil {
				return Result{Root: x1, Iterations: steps}, err
			}
		}
	}
	return Result{Root: x1, Iterations: steps}, nil
}
