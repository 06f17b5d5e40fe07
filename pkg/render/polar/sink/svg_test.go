package sink

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/roseplot/pkg/curve"
	"github.com/matzehuels/roseplot/pkg/render/polar"
)

func rosePlot(t *testing.T) polar.Plot {
	t.Helper()
	s, err := curve.Rose{Base: 1, Petals: 4}.Trace(100)
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	return polar.Build(s, 800, 600, polar.WithTitle("Line Plot on Polar Axis"))
}

func TestRenderSVGStructure(t *testing.T) {
	svg := string(RenderSVG(rosePlot(t)))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 800.0 600.0"`,
		`<polyline points="`,
		`Line Plot on Polar Axis`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGCurvePointCount(t *testing.T) {
	svg := string(RenderSVG(rosePlot(t)))

	start := strings.Index(svg, `<polyline points="`)
	if start < 0 {
		t.Fatal("SVG missing polyline")
	}
	rest := svg[start+len(`<polyline points="`):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		t.Fatal("unterminated polyline points attribute")
	}

	points := strings.Fields(rest[:end])
	if len(points) != 100 {
		t.Errorf("polyline has %d points, want 100", len(points))
	}
}

func TestRenderSVGGridAndLabels(t *testing.T) {
	p := rosePlot(t)

	full := string(RenderSVG(p))
	if !strings.Contains(full, "<circle") {
		t.Error("full render should contain grid rings")
	}
	if !strings.Contains(full, "45°") {
		t.Error("full render should contain spoke labels")
	}

	bare := string(RenderSVG(p, WithoutGrid(), WithoutLabels()))
	if strings.Contains(bare, "<line") {
		t.Error("render without grid should not contain spokes")
	}
	if strings.Contains(bare, "45°") {
		t.Error("render without labels should not contain spoke labels")
	}
	// The surface boundary circle remains even without the grid.
	if !strings.Contains(bare, "<polyline") {
		t.Error("render without grid should still contain the curve")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	p := rosePlot(t)

	a := RenderSVG(p)
	b := RenderSVG(p)
	if !bytes.Equal(a, b) {
		t.Error("identical plots should produce byte-identical SVG")
	}
}

func TestRenderSVGEscapesTitle(t *testing.T) {
	s, err := curve.Rose{Base: 1, Petals: 4}.Trace(10)
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	p := polar.Build(s, 400, 300, polar.WithTitle("a < b & c"))

	svg := string(RenderSVG(p))
	if !strings.Contains(svg, "a &lt; b &amp; c") {
		t.Errorf("title not escaped: %s", svg)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(rosePlot(t))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	s := string(data)
	for _, want := range []string{
		`"title": "Line Plot on Polar Axis"`,
		`"samples": 100`,
		`"theta"`,
		`"r"`,
		fmt.Sprintf(`"r_max": %d`, 2),
	} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON missing %q", want)
		}
	}
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "0.5"},
		{1, "1"},
		{1.5, "1.5"},
		{2, "2"},
		{10, "10"},
	}

	for _, tt := range tests {
		if got := formatTick(tt.in); got != tt.want {
			t.Errorf("formatTick(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
