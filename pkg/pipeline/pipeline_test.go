package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/roseplot/pkg/cache"
	"github.com/matzehuels/roseplot/pkg/curve"
	"github.com/matzehuels/roseplot/pkg/errors"
)

func TestSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.Samples != 100 {
		t.Errorf("Samples = %d, want 100", opts.Samples)
	}
	if opts.Base != 1.0 {
		t.Errorf("Base = %v, want 1.0", opts.Base)
	}
	if opts.Petals != 4.0 {
		t.Errorf("Petals = %v, want 4.0", opts.Petals)
	}
	if opts.Title != "Line Plot on Polar Axis" {
		t.Errorf("Title = %q, want %q", opts.Title, "Line Plot on Polar Axis")
	}
	if opts.Width != 800 || opts.Height != 600 {
		t.Errorf("frame = %vx%v, want 800x600", opts.Width, opts.Height)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPDF {
		t.Errorf("Formats = %v, want [pdf]", opts.Formats)
	}
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	opts := Options{
		Samples: 50,
		Petals:  3,
		Title:   "custom",
		Formats: []string{FormatSVG},
	}
	opts.SetDefaults()

	if opts.Samples != 50 {
		t.Errorf("Samples = %d, want 50", opts.Samples)
	}
	if opts.Petals != 3 {
		t.Errorf("Petals = %v, want 3", opts.Petals)
	}
	if opts.Title != "custom" {
		t.Errorf("Title = %q, want %q", opts.Title, "custom")
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid pdf", []string{"pdf"}, false},
		{"valid multiple", []string{"svg", "pdf", "png", "json"}, false},
		{"invalid format", []string{"webp"}, true},
		{"mixed valid invalid", []string{"svg", "webp"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %q, want INVALID_FORMAT", errors.GetCode(err))
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr errors.Code
	}{
		{"defaults are valid", func(o *Options) {}, ""},
		{"too few samples", func(o *Options) { o.Samples = 1 }, errors.ErrCodeInvalidCurve},
		{"zero width", func(o *Options) { o.Width = -1 }, errors.ErrCodeInvalidInput},
		{"bad format", func(o *Options) { o.Formats = []string{"bmp"} }, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts Options
			opts.SetDefaults()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want code %q", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteSVG(t *testing.T) {
	runner := NewRunner(nil, nil)

	opts := Options{Formats: []string{FormatSVG, FormatJSON}}
	opts.SetDefaults()

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || len(svg) == 0 {
		t.Fatal("missing svg artifact")
	}
	if !strings.Contains(string(svg), "Line Plot on Polar Axis") {
		t.Error("svg artifact missing title")
	}

	jsonData, ok := result.Artifacts[FormatJSON]
	if !ok || !strings.Contains(string(jsonData), `"samples": 100`) {
		t.Error("json artifact missing sample count")
	}

	if result.Plot.Series.Len() != 100 {
		t.Errorf("plot series length = %d, want 100", result.Plot.Series.Len())
	}
}

func TestExecuteDeterministic(t *testing.T) {
	runner := NewRunner(nil, nil)

	opts := Options{Formats: []string{FormatSVG}}
	opts.SetDefaults()

	a, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	b, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !bytes.Equal(a.Artifacts[FormatSVG], b.Artifacts[FormatSVG]) {
		t.Error("identical options should produce byte-identical SVG")
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil)

	_, err := runner.Execute(context.Background(), Options{Samples: 1, Width: 800, Height: 600, Formats: []string{FormatSVG}})
	if err == nil {
		t.Fatal("Execute() expected error for invalid options")
	}
}

// TestConvertServedFromCache exercises the conversion path without
// rsvg-convert by pre-seeding the artifact cache under the key the
// conversion would use.
func TestConvertServedFromCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	runner := NewRunner(fc, nil)
	defer runner.Close()

	opts := Options{Formats: []string{FormatSVG}}
	opts.SetDefaults()

	// Render the SVG, then seed the cache with a fake PDF under the key the
	// conversion would use.
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	svg := result.Artifacts[FormatSVG]

	ctx := context.Background()
	fake := []byte("%PDF-cached")
	key := cache.ArtifactKey(svg, FormatPDF, 0)
	if err := fc.Set(ctx, key, fake, 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	opts.Formats = []string{FormatPDF}
	result, err = runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", result.CacheHits)
	}
	if !bytes.Equal(result.Artifacts[FormatPDF], fake) {
		t.Error("pdf artifact should be served from cache")
	}
}

func TestApplyManifest(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	opts.ApplyManifest(nil) // no-op

	var m curve.Manifest
	m.Samples = 200
	m.Curve.Petals = 5
	opts.ApplyManifest(&m)

	if opts.Samples != 200 {
		t.Errorf("Samples = %d, want 200", opts.Samples)
	}
	if opts.Petals != 5 {
		t.Errorf("Petals = %v, want 5", opts.Petals)
	}
	// Fields the manifest leaves unset keep their defaults.
	if opts.Title != DefaultTitle {
		t.Errorf("Title = %q, want default", opts.Title)
	}
	if opts.Base != DefaultBase {
		t.Errorf("Base = %v, want default", opts.Base)
	}
}
