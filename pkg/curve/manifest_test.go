package curve

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "curve.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
title = "Line Plot on Polar Axis"
samples = 100

[curve]
base = 1.0
petals = 4
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error: %v", err)
	}

	if m.Title != "Line Plot on Polar Axis" {
		t.Errorf("Title = %q, want %q", m.Title, "Line Plot on Polar Axis")
	}
	if m.Samples != 100 {
		t.Errorf("Samples = %d, want 100", m.Samples)
	}

	c := m.Rose()
	if c.Base != 1.0 {
		t.Errorf("Base = %v, want 1.0", c.Base)
	}
	if c.Petals != 4 {
		t.Errorf("Petals = %v, want 4", c.Petals)
	}
}

func TestLoadManifestPartial(t *testing.T) {
	path := writeManifest(t, `
[curve]
petals = 3
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error: %v", err)
	}

	if m.Title != "" {
		t.Errorf("Title = %q, want empty", m.Title)
	}
	if m.Samples != 0 {
		t.Errorf("Samples = %d, want 0", m.Samples)
	}
	if m.Curve.Petals != 3 {
		t.Errorf("Petals = %v, want 3", m.Curve.Petals)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", `title = `},
		{"negative samples", `samples = -5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			if _, err := LoadManifest(path); err == nil {
				t.Error("LoadManifest() expected error, got nil")
			}
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadManifest() expected error for missing file, got nil")
	}
}
