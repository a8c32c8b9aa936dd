package objective

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/Knetic/govaluate"

	"github.com/wildstyl3r/brentq/internal/solver"
)

// the usual single-argument helpers plus pow; govaluate reserves ^ for xor
var builtins = map[string]govaluate.ExpressionFunction{
	"sin":  func(args ...interface{}) (interface{}, error) { return math.Sin(toFloat(args[0])), nil },
	"cos":  func(args ...interface{}) (interface{}, error) { return math.Cos(toFloat(args[0])), nil },
	"tan":  func(args ...interface{}) (interface{}, error) { return math.Tan(toFloat(args[0])), nil },
	"exp":  func(args ...interface{}) (interface{}, error) { return math.Exp(toFloat(args[0])), nil },
	"log":  func(args ...interface{}) (interface{}, error) { return math.Log(toFloat(args[0])), nil },
	"sqrt": func(args ...interface{}) (interface{}, error) { return math.Sqrt(toFloat(args[0])), nil },
	"abs":  func(args ...interface{}) (interface{}, error) { return math.Abs(toFloat(args[0])), nil },
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

type expression struct {
	expr   *govaluate.EvaluableExpression
	params map[string]interface{}
}

// decimal commas happen in hand-written configs; only a comma flanked by
// digits is rewritten, so spaced argument separators like pow(x, 2) survive
var decimalComma = regexp.MustCompile(`(\d),(\d)`)

// Parse compiles an expression in the variable x into an objective function.
func Parse(src string) (solver.Func, error) {
	src = decimalComma.ReplaceAllString(src, "$1.$2")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(src, builtins)
	if err != nil {
		return nil, fmt.Errorf("objective %q: %w", src, err)
	}
	return &expression{
		expr:   parsed,
		params: map[string]interface{}{"x": 0.0},
	}, nil
}

func (e *expression) Eval(x float64) (float64, error) {
	e.params["x"] = x
	v, err := e.expr.Evaluate(e.params)
	if err != nil {
		return math.NaN(), err
	}

	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("expression produced a non-numeric string %q", t)
		}
		return parsed, nil
	default:
		return math.NaN(), fmt.Errorf("expression produced %T, not a number", v)
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
