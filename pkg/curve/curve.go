// Package curve generates parametric curves in polar coordinates.
//
// The central type is [Rose], a rose curve of the form r = base + sin(k·θ).
// Curves are sampled into a [Series] of positionally matched angle and
// radius slices, which downstream renderers consume in insertion order.
package curve

import (
	"fmt"
	"math"
)

// FullTurn is the angular domain upper bound (2π).
const FullTurn = 2 * math.Pi

// DefaultSamples is the number of sample points used when none is specified.
const DefaultSamples = 100

// Series holds a sampled curve as positionally matched angle/radius pairs.
// Theta[i] and R[i] describe the i-th point; the order of points defines
// the path a line renderer traces.
type Series struct {
	Theta []float64 // angles in radians
	R     []float64 // radii, same length as Theta
}

// Len returns the number of sampled points.
func (s Series) Len() int { return len(s.Theta) }

// MaxR returns the largest radius in the series, or 0 for an empty series.
func (s Series) MaxR() float64 {
	max := 0.0
	for _, r := range s.R {
		if r > max {
			max = r
		}
	}
	return max
}

// Linspace returns n evenly spaced values over [start, stop], including
// both endpoints. The spacing is (stop-start)/(n-1).
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("linspace: need at least 2 samples, got %d", n)
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// Pin the final sample to the exact endpoint; accumulated float error
	// would otherwise leave it a few ulps off.
	out[n-1] = stop
	return out, nil
}

// Rose is a rose curve r = Base + sin(Petals·θ).
//
// With Base=1 the radius stays within [Base-1, Base+1], so the curve never
// crosses into negative radii. Petals controls the petal count: even values
// of Petals produce 2·Petals petals, odd values produce Petals petals when
// Base is zero; with the radial offset the lobe structure is k-fold.
type Rose struct {
	Base   float64 // radial offset
	Petals float64 // angular frequency k
}

// Trace samples the curve at n evenly spaced angles over [0, 2π], endpoints
// included. The radius at each angle is Base + sin(Petals·θ), a pure
// function of the angle.
func (c Rose) Trace(n int) (Series, error) {
	theta, err := Linspace(0, FullTurn, n)
	if err != nil {
		return Series{}, err
	}
	r := make([]float64, n)
	for i, t := range theta {
		r[i] = c.Base + math.Sin(c.Petals*t)
	}
	return Series{Theta: theta, R: r}, nil
}
