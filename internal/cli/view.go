package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roseplot/pkg/curve"
	rperrors "github.com/matzehuels/roseplot/pkg/errors"
	"github.com/matzehuels/roseplot/pkg/pipeline"
)

// viewCommand creates the view command: the interactive terminal viewer
// without any file output.
func (c *CLI) viewCommand() *cobra.Command {
	opts := plotOpts{
		samples: pipeline.DefaultSamples,
		petals:  pipeline.DefaultPetals,
		base:    pipeline.DefaultBase,
		title:   pipeline.DefaultTitle,
	}

	cmd := &cobra.Command{
		Use:   "view [curve.toml]",
		Short: "Preview a rose curve in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var manifestPath string
			if len(args) == 1 {
				manifestPath = args[0]
			}
			pipeOpts, err := buildOptions(cmd, &opts, nil, manifestPath)
			if err != nil {
				return err
			}

			series, err := pipeOpts.Rose().Trace(pipeOpts.Samples)
			if err != nil {
				return rperrors.Wrap(rperrors.ErrCodeInvalidCurve, err, "trace curve")
			}
			return runViewer(cmd.Context(), series, pipeOpts.Title)
		},
	}

	cmd.Flags().IntVar(&opts.samples, "samples", opts.samples, "number of curve samples")
	cmd.Flags().Float64Var(&opts.petals, "petals", opts.petals, "angular frequency k of the rose curve")
	cmd.Flags().Float64Var(&opts.base, "base", opts.base, "radial offset of the rose curve")
	cmd.Flags().StringVar(&opts.title, "title", opts.title, "plot title")

	return cmd
}

// runViewer opens the bubbletea viewer and blocks until it is dismissed.
func runViewer(ctx context.Context, series curve.Series, title string) error {
	model := newViewerModel(series, title)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return rperrors.Wrap(rperrors.ErrCodeRender, err, "viewer")
	}
	return nil
}

// =============================================================================
// ViewerModel - Interactive polar plot display
// =============================================================================

// viewerModel is the bubbletea model for the terminal plot viewer. It
// draws the curve on a braille micro-pixel canvas with a polar grid.
type viewerModel struct {
	series   curve.Series
	title    string
	width    int
	height   int
	showGrid bool
}

func newViewerModel(series curve.Series, title string) viewerModel {
	return viewerModel{
		series:   series,
		title:    title,
		width:    80,
		height:   24,
		showGrid: true,
	}
}

func (m viewerModel) Init() tea.Cmd {
	return nil
}

func (m viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "g":
			m.showGrid = !m.showGrid
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m viewerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit  g toggle grid"))
	b.WriteString("\n\n")

	// Three header lines plus a status line below the canvas.
	canvasH := m.height - 5
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width
	if canvasW < 10 {
		canvasW = 10
	}

	for _, line := range m.renderCanvas(canvasW, canvasH) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d samples · rmax %g", m.series.Len(), viewerRMax(m.series))))
	return b.String()
}

// renderCanvas draws the grid and curve into a braille canvas of the given
// cell dimensions.
func (m viewerModel) renderCanvas(w, h int) []string {
	br := newBrailleBuf(w, h)

	// Micro-pixel dimensions. Terminal cells are roughly twice as tall as
	// wide, and braille packs 2×4 dots per cell, so micro-pixels come out
	// close to square and the surface can use a common radius.
	mw, mh := 2*w, 4*h
	cx, cy := mw/2, mh/2
	radius := min(mw, mh)/2 - 2
	if radius < 4 {
		radius = 4
	}

	rmax := viewerRMax(m.series)

	if m.showGrid {
		m.drawGrid(br, cx, cy, radius)
	}
	drawCircle(br, cx, cy, radius)

	// Trace the curve in sample order so the drawn path matches the data.
	prevSet := false
	var px, py int
	for i := range m.series.Theta {
		r := m.series.R[i] / rmax * float64(radius)
		x := cx + int(math.Round(r*math.Cos(m.series.Theta[i])))
		y := cy - int(math.Round(r*math.Sin(m.series.Theta[i])))
		if prevSet {
			br.drawLineMicro(px, py, x, y)
		}
		px, py, prevSet = x, y, true
	}

	return br.toLines()
}

// drawGrid draws the angular spokes and a half-radius ring.
func (m viewerModel) drawGrid(br *brailleBuf, cx, cy, radius int) {
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		x := cx + int(math.Round(float64(radius)*math.Cos(a)))
		y := cy - int(math.Round(float64(radius)*math.Sin(a)))
		br.drawLineMicro(cx, cy, x, y)
	}
	drawCircle(br, cx, cy, radius/2)
}

// drawCircle draws a circle by sampling it densely on the microgrid.
func drawCircle(br *brailleBuf, cx, cy, radius int) {
	steps := 16 * radius
	if steps < 64 {
		steps = 64
	}
	for i := 0; i < steps; i++ {
		a := float64(i) / float64(steps) * 2 * math.Pi
		x := cx + int(math.Round(float64(radius)*math.Cos(a)))
		y := cy - int(math.Round(float64(radius)*math.Sin(a)))
		br.setPixel(x, y)
	}
}

// viewerRMax returns the radial scale for the viewer surface.
func viewerRMax(s curve.Series) float64 {
	rmax := s.MaxR()
	if rmax <= 0 {
		return 1
	}
	return rmax
}
