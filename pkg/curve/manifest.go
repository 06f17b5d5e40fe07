package curve

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Manifest describes a curve in a TOML file. All fields are optional;
// zero values are treated as unset and keep the caller's defaults.
//
// Example curve.toml:
//
//	title = "Line Plot on Polar Axis"
//	samples = 100
//
//	[curve]
//	base = 1.0
//	petals = 4
type Manifest struct {
	Title   string `toml:"title"`
	Samples int    `toml:"samples"`
	Curve   struct {
		Base   float64 `toml:"base"`
		Petals float64 `toml:"petals"`
	} `toml:"curve"`
}

// LoadManifest reads and parses a TOML curve manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Samples < 0 {
		return nil, fmt.Errorf("manifest %s: samples must be positive, got %d", path, m.Samples)
	}
	return &m, nil
}

// Rose returns the curve described by the manifest.
func (m *Manifest) Rose() Rose {
	return Rose{Base: m.Curve.Base, Petals: m.Curve.Petals}
}
