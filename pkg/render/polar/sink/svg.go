package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/roseplot/pkg/render/polar"
)

// Default visual parameters, chosen to match the familiar look of
// scientific plotting tools.
const (
	curveColor  = "#1f77b4" // line color for the plotted curve
	gridColor   = "#c8c8c8" // ring and spoke color
	edgeColor   = "#888888" // outer surface boundary
	labelColor  = "#444444"
	fontFamily  = "Helvetica, Arial, sans-serif"
	curveWidth  = 1.5
	labelSize   = 11
	titleSize   = 16
	labelOffset = 14.0 // distance of spoke labels beyond the surface edge
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	grid   bool
	labels bool
}

// WithoutGrid disables the radial rings and angular spokes.
func WithoutGrid() SVGOption { return func(r *svgRenderer) { r.grid = false } }

// WithoutLabels disables tick labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// RenderSVG renders the plot as deterministic standalone SVG. The same plot
// always produces byte-identical output.
func RenderSVG(p polar.Plot, opts ...SVGOption) []byte {
	r := svgRenderer{grid: true, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		p.FrameWidth, p.FrameHeight, p.FrameWidth, p.FrameHeight)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="white"/>`+"\n", p.FrameWidth, p.FrameHeight)

	if r.grid {
		renderGrid(&buf, p)
	}
	renderBoundary(&buf, p)
	if r.labels {
		renderSpokeLabels(&buf, p)
		renderRadialLabels(&buf, p)
	}
	renderCurve(&buf, p)
	renderTitle(&buf, p)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderGrid draws the radial rings and angular spokes.
func renderGrid(buf *bytes.Buffer, p polar.Plot) {
	for _, t := range p.RTicks {
		radius := t / p.RMax * p.Radius
		if radius >= p.Radius-1e-9 {
			continue // outer ring drawn as the boundary
		}
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="0.8"/>`+"\n",
			p.CenterX, p.CenterY, radius, gridColor)
	}
	for _, a := range p.SpokeAngles() {
		x, y := p.Project(a, p.RMax)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.8"/>`+"\n",
			p.CenterX, p.CenterY, x, y, gridColor)
	}
}

// renderBoundary draws the outer edge of the polar surface.
func renderBoundary(buf *bytes.Buffer, p polar.Plot) {
	fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
		p.CenterX, p.CenterY, p.Radius, edgeColor)
}

// renderSpokeLabels draws degree labels just outside the surface edge.
func renderSpokeLabels(buf *bytes.Buffer, p polar.Plot) {
	for i, a := range p.SpokeAngles() {
		degrees := i * 45
		lx := p.CenterX + (p.Radius+labelOffset)*math.Cos(a)
		ly := p.CenterY - (p.Radius+labelOffset)*math.Sin(a)
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%d" fill="%s" text-anchor="middle" dominant-baseline="middle">%d°</text>`+"\n",
			lx, ly, fontFamily, labelSize, labelColor, degrees)
	}
}

// renderRadialLabels draws the radius value of each ring along the
// horizontal axis, nudged above it so the labels stay clear of the grid.
func renderRadialLabels(buf *bytes.Buffer, p polar.Plot) {
	for _, t := range p.RTicks {
		radius := t / p.RMax * p.Radius
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%d" fill="%s" text-anchor="middle">%s</text>`+"\n",
			p.CenterX+radius, p.CenterY-5, fontFamily, labelSize, labelColor, formatTick(t))
	}
}

// renderCurve draws the sampled curve as a single connected polyline, in
// sample order.
func renderCurve(buf *bytes.Buffer, p polar.Plot) {
	if len(p.Points) == 0 {
		return
	}
	buf.WriteString(`  <polyline points="`)
	for i, pt := range p.Points {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%.2f,%.2f", pt.X, pt.Y)
	}
	fmt.Fprintf(buf, `" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"/>`+"\n",
		curveColor, curveWidth)
}

// renderTitle draws the centered title in the band above the surface.
func renderTitle(buf *bytes.Buffer, p polar.Plot) {
	if p.Title == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="24" font-family="%s" font-size="%d" fill="black" text-anchor="middle">%s</text>`+"\n",
		p.FrameWidth/2, fontFamily, titleSize, escapeText(p.Title))
}

// formatTick renders a tick value without trailing zeros (2 not 2.0,
// 0.5 stays 0.5).
func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}

// escapeText escapes the XML special characters that can appear in titles.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
