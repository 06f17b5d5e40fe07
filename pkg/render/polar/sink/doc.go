// Package sink provides output format renderers for polar plots.
//
// # Overview
//
// A "sink" transforms a computed [polar.Plot] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics, deterministic byte output
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//   - JSON: Series and surface metadata export for external tools
//
// # SVG Output
//
// [RenderSVG] produces a standalone SVG with:
//
//   - White background and circular surface boundary
//   - Radial grid rings at labeled ticks
//   - Angular spokes every 45° with degree labels
//   - The curve as a single connected polyline in sample order
//   - A centered title band
//
// Basic usage:
//
//	svg := sink.RenderSVG(plot)
//	minimal := sink.RenderSVG(plot, sink.WithoutGrid(), sink.WithoutLabels())
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the plot by first generating SVG,
// then converting via [render.ToPDF] and [render.ToPNG]:
//
//	pdf, err := sink.RenderPDF(plot)
//	png, err := sink.RenderPNG(plot, sink.WithScale(2))
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.ToPDF]: github.com/matzehuels/roseplot/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/roseplot/pkg/render.ToPNG
// [polar.Plot]: github.com/matzehuels/roseplot/pkg/render/polar.Plot
package sink
