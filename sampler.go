package tutor

import "math"

// Function is a compiled single-variable expression.
type Function func(x float64) (float64, error)

// Evaluator compiles expression text into a Function of x.
type Evaluator interface {
	Compile(expression string) (Function, error)
}

// Sampler evaluates expressions over a fixed Domain.
type Sampler struct {
	evaluator Evaluator
	domain    Domain
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithDomain overrides DefaultDomain.
func WithDomain(d Domain) SamplerOption {
	return func(s *Sampler) { s.domain = d }
}

// NewSampler creates a Sampler backed by the given evaluator.
func NewSampler(evaluator Evaluator, opts ...SamplerOption) *Sampler {
	s := &Sampler{evaluator: evaluator, domain: DefaultDomain}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Domain returns the sampling domain.
func (s *Sampler) Domain() Domain {
	return s.domain
}

// Sample evaluates expression at every abscissa of the domain. Points where
// evaluation fails or yields a non-finite value are skipped. It returns
// false when no point survives.
func (s *Sampler) Sample(expression string) (*PlotResult, bool) {
	if s.domain.Validate() != nil {
		return nil, false
	}
	fn, err := s.evaluator.Compile(expression)
	if err != nil {
		return nil, false
	}
	points := make([]Point, 0, s.domain.Steps+1)
	for i := 0; i <= s.domain.Steps; i++ {
		x := s.domain.Abscissa(i)
		y, err := fn(x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		points = append(points, Point{X: round3(x), Y: round3(y)})
	}
	if len(points) == 0 {
		return nil, false
	}
	return &PlotResult{
		Function: "f(x) = " + expression,
		Points:   points,
	}, true
}

// round3 rounds to 3 decimals and folds negative zero into zero.
func round3(v float64) float64 {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return 0
	}
	return r
}
