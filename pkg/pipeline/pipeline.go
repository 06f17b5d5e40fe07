// Package pipeline provides the core plotting pipeline for roseplot.
//
// This package implements the trace → plot → render pipeline shared by every
// command. Centralizing it keeps defaults and validation consistent across
// entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Trace: Sample the rose curve over [0, 2π]
//  2. Plot: Compute the polar surface geometry for the sampled series
//  3. Render: Generate output in various formats (SVG, PDF, PNG, JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Formats: []string{"pdf"}}
//	opts.SetDefaults()
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"github.com/matzehuels/roseplot/pkg/curve"
	"github.com/matzehuels/roseplot/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for All Commands
// =============================================================================

const (
	// DefaultSamples is the number of curve samples over [0, 2π].
	DefaultSamples = curve.DefaultSamples

	// DefaultBase is the radial offset of the rose curve.
	DefaultBase = 1.0

	// DefaultPetals is the angular frequency of the rose curve.
	DefaultPetals = 4.0

	// DefaultTitle is the plot title.
	DefaultTitle = "Line Plot on Polar Axis"

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultPNGScale is the raster scale factor for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %s (must be 'svg', 'pdf', 'png', or 'json')", f)
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the plotting pipeline.
type Options struct {
	// Curve options
	Samples int     `json:"samples,omitempty"`
	Base    float64 `json:"base,omitempty"`
	Petals  float64 `json:"petals,omitempty"`

	// Plot options
	Title  string  `json:"title,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	NoGrid   bool     `json:"no_grid,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`
}

// SetDefaults fills unset fields with pipeline defaults. The zero-value
// Options renders the stock rose curve r = 1 + sin(4θ) as PDF.
func (o *Options) SetDefaults() {
	if o.Samples == 0 {
		o.Samples = DefaultSamples
	}
	if o.Base == 0 {
		o.Base = DefaultBase
	}
	if o.Petals == 0 {
		o.Petals = DefaultPetals
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
}

// Validate checks the options for coherence.
func (o *Options) Validate() error {
	if o.Samples < 2 {
		return errors.New(errors.ErrCodeInvalidCurve,
			"samples must be at least 2, got %d", o.Samples)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"frame must be positive, got %.0fx%.0f", o.Width, o.Height)
	}
	return ValidateFormats(o.Formats)
}

// Rose returns the curve described by the options.
func (o *Options) Rose() curve.Rose {
	return curve.Rose{Base: o.Base, Petals: o.Petals}
}

// ApplyManifest overlays manifest values onto the options. Only fields the
// manifest actually sets are copied, so flags applied afterwards still win.
func (o *Options) ApplyManifest(m *curve.Manifest) {
	if m == nil {
		return
	}
	if m.Samples > 0 {
		o.Samples = m.Samples
	}
	if m.Title != "" {
		o.Title = m.Title
	}
	if m.Curve.Base != 0 {
		o.Base = m.Curve.Base
	}
	if m.Curve.Petals != 0 {
		o.Petals = m.Curve.Petals
	}
}
