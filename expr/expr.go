// Package expr implements [tutor.Evaluator] on top of expr-lang.
//
// Student input is written the way it is on paper, so expressions are
// normalized before compilation: implicit products such as "2x", "3(x+1)"
// and "(x+1)(x-1)" get an explicit "*". The "^" operator is exponentiation
// and "/" always divides as floats, so a division by zero yields ±Inf
// rather than an error.
package expr

import (
	"fmt"
	"math"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/onbuch/tutor"
)

// Interface compliance check.
var _ tutor.Evaluator = (*Evaluator)(nil)

// Evaluator compiles single-variable expressions of x.
type Evaluator struct {
	options []expr.Option
}

// New creates an Evaluator with the math functions sin, cos, tan, sqrt, ln,
// log, exp and the constants pi and e. abs is the expr-lang builtin.
func New() *Evaluator {
	opts := []expr.Option{expr.Env(newEnv(0))}
	for name, fn := range unaryFuncs {
		opts = append(opts, expr.Function(name, wrapUnary(name, fn)))
	}
	return &Evaluator{options: opts}
}

// Compile normalizes and compiles expression. The returned Function is safe
// for concurrent use.
func (e *Evaluator) Compile(expression string) (tutor.Function, error) {
	program, err := expr.Compile(Normalize(expression), e.options...)
	if err != nil {
		return nil, fmt.Errorf("expr: %w", err)
	}
	return func(x float64) (float64, error) {
		return run(program, x)
	}, nil
}

func run(program *vm.Program, x float64) (float64, error) {
	out, err := expr.Run(program, newEnv(x))
	if err != nil {
		return 0, fmt.Errorf("expr: %w", err)
	}
	return toFloat(out)
}

func newEnv(x float64) map[string]any {
	return map[string]any{
		"x":  x,
		"pi": math.Pi,
		"e":  math.E,
	}
}

var unaryFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"sqrt": math.Sqrt,
	"ln":   math.Log,
	"log":  math.Log10,
	"exp":  math.Exp,
}

func wrapUnary(name string, fn func(float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		v, err := toFloat(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return fn(v), nil
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

var (
	digitProduct = regexp.MustCompile(`(\d)\s*([a-z(])`)
	varProduct   = regexp.MustCompile(`\bx\s*([\d(])`)
	parenProduct = regexp.MustCompile(`\)\s*([\da-z(])`)
)

// Normalize makes implicit multiplication explicit. Scientific notation
// such as "1e3" is not supported.
func Normalize(expression string) string {
	s := digitProduct.ReplaceAllString(expression, "$1*$2")
	s = varProduct.ReplaceAllString(s, "x*$1")
	return parenProduct.ReplaceAllString(s, ")*$1")
}
