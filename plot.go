package tutor

// Point is a single sample of a plotted function.
type Point struct {
	X float64
	Y float64
}

// PlotResult is the plot payload returned instead of model text.
type PlotResult struct {
	Function string
	Points   []Point
}

// Domain is the sampling interval of the Sampler.
type Domain struct {
	Min   float64
	Max   float64
	Steps int
}

// DefaultDomain samples [-10, 10] over 100 steps, i.e. 101 abscissas.
var DefaultDomain = Domain{Min: -10, Max: 10, Steps: 100}

// Abscissa returns the i-th evenly spaced abscissa, 0 <= i <= Steps.
func (d Domain) Abscissa(i int) float64 {
	return d.Min + float64(i)*(d.Max-d.Min)/float64(d.Steps)
}
