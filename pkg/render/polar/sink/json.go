package sink

import (
	"encoding/json"

	"github.com/matzehuels/roseplot/pkg/render/polar"
)

// plotJSON is the serialized form of a plot: the raw series plus enough
// metadata to reproduce the surface in an external tool.
type plotJSON struct {
	Title       string    `json:"title,omitempty"`
	Samples     int       `json:"samples"`
	Theta       []float64 `json:"theta"`
	R           []float64 `json:"r"`
	RMax        float64   `json:"r_max"`
	FrameWidth  float64   `json:"frame_width"`
	FrameHeight float64   `json:"frame_height"`
}

// RenderJSON exports the plot data as indented JSON. The angle and radius
// sequences are emitted in generation order.
func RenderJSON(p polar.Plot) ([]byte, error) {
	out := plotJSON{
		Title:       p.Title,
		Samples:     p.Series.Len(),
		Theta:       p.Series.Theta,
		R:           p.Series.R,
		RMax:        p.RMax,
		FrameWidth:  p.FrameWidth,
		FrameHeight: p.FrameHeight,
	}
	return json.MarshalIndent(out, "", "  ")
}
