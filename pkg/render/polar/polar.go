// Package polar computes the geometry of a polar line plot.
//
// [Build] turns a sampled curve into a [Plot]: a polar surface centered in
// a fixed frame, with radial and angular grid ticks and the curve projected
// to frame coordinates. Sinks (see the sink subpackage) consume a Plot and
// emit concrete output formats.
//
// The projection follows the usual mathematical convention: θ=0 points
// east and angles increase counter-clockwise. Frame coordinates are
// y-down, as SVG expects.
package polar

import (
	"math"

	"github.com/matzehuels/roseplot/pkg/curve"
)

const (
	// titleBand is the vertical space reserved above the surface for the title.
	titleBand = 40.0

	// surfaceMargin is the padding between the surface and the frame edge.
	surfaceMargin = 30.0

	// spokeCount is the number of angular grid spokes (one per 45°).
	spokeCount = 8
)

// Point is a projected curve sample in frame coordinates.
type Point struct {
	X, Y float64
}

// Plot is a polar plotting surface with a projected curve.
type Plot struct {
	Series curve.Series // source data, in generation order
	Title  string

	FrameWidth  float64
	FrameHeight float64

	CenterX float64 // surface center in frame coordinates
	CenterY float64
	Radius  float64 // surface radius in frame units

	RMax   float64   // data radius mapped to the surface edge
	RTicks []float64 // radial grid positions in data units, ascending

	Points []Point // projected samples, same order as Series
}

// Option configures plot construction.
type Option func(*Plot)

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(p *Plot) { p.Title = title }
}

// WithRMax fixes the data radius at the surface edge instead of deriving
// it from the series maximum.
func WithRMax(r float64) Option {
	return func(p *Plot) { p.RMax = r }
}

// Build computes the plot geometry for a series within a width×height frame.
// The surface is the largest circle that fits below the title band; the
// radial scale is derived from the series unless overridden with WithRMax.
func Build(s curve.Series, width, height float64, opts ...Option) Plot {
	p := Plot{
		Series:      s,
		FrameWidth:  width,
		FrameHeight: height,
	}
	for _, opt := range opts {
		opt(&p)
	}

	p.CenterX = width / 2
	p.CenterY = titleBand + (height-titleBand)/2
	p.Radius = min(width/2, (height-titleBand)/2) - surfaceMargin
	if p.Radius < 0 {
		p.Radius = 0
	}

	if p.RMax <= 0 {
		p.RMax = roundUpTick(s.MaxR())
	}
	if p.RMax <= 0 {
		p.RMax = 1 // empty or all-zero series still gets a unit surface
	}
	p.RTicks = ticks(p.RMax)

	p.Points = make([]Point, s.Len())
	for i := range s.Theta {
		x, y := p.Project(s.Theta[i], s.R[i])
		p.Points[i] = Point{X: x, Y: y}
	}
	return p
}

// Project maps a polar data point to frame coordinates.
// Radii beyond RMax project outside the surface; sinks clip via the grid.
func (p Plot) Project(theta, r float64) (x, y float64) {
	scaled := r / p.RMax * p.Radius
	x = p.CenterX + scaled*math.Cos(theta)
	y = p.CenterY - scaled*math.Sin(theta)
	return x, y
}

// SpokeAngles returns the angular grid positions in radians (every 45°).
func (p Plot) SpokeAngles() []float64 {
	out := make([]float64, spokeCount)
	for i := range out {
		out[i] = float64(i) * math.Pi / 4
	}
	return out
}

// roundUpTick rounds v up to the next half-unit so the outer ring lands on
// a labeled tick (e.g. 1.87 → 2.0).
func roundUpTick(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Ceil(v*2) / 2
}

// ticks returns radial grid positions from 0 (exclusive) to rmax in
// half-unit steps, thinned to at most 8 rings for large ranges.
func ticks(rmax float64) []float64 {
	step := 0.5
	for rmax/step > 8 {
		step *= 2
	}
	var out []float64
	for t := step; t <= rmax+1e-9; t += step {
		out = append(out, math.Round(t/step)*step)
	}
	return out
}
