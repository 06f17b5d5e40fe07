package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roseplot/pkg/cache"
	"github.com/matzehuels/roseplot/pkg/curve"
	"github.com/matzehuels/roseplot/pkg/errors"
	"github.com/matzehuels/roseplot/pkg/observability"
	"github.com/matzehuels/roseplot/pkg/render/polar"
	"github.com/matzehuels/roseplot/pkg/render/polar/sink"
)

// artifactTTL bounds how long converted artifacts stay cached. The source
// SVG is part of the key, so stale hits are impossible; the TTL only keeps
// the cache directory from growing without bound.
const artifactTTL = 30 * 24 * time.Hour

// Result holds the outcome of a pipeline execution.
type Result struct {
	Plot      polar.Plot
	Artifacts map[string][]byte // format → rendered bytes
	CacheHits int               // artifacts served from cache
	Stats     Stats
}

// Stats records per-stage timing.
type Stats struct {
	TraceTime  time.Duration
	RenderTime time.Duration
}

// Runner encapsulates pipeline execution with artifact caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
// If logger is nil, the default logger is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete trace → plot → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	traceStart := time.Now()
	observability.Pipeline().OnTraceStart(ctx, opts.Samples)
	series, err := r.Trace(opts)
	result.Stats.TraceTime = time.Since(traceStart)
	observability.Pipeline().OnTraceComplete(ctx, opts.Samples, result.Stats.TraceTime, err)
	if err != nil {
		return nil, err
	}

	result.Plot = r.BuildPlot(series, opts)
	r.Logger.Debug("traced curve",
		"samples", series.Len(),
		"rmax", result.Plot.RMax,
		"duration", result.Stats.TraceTime)

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, hits, err := r.Render(ctx, result.Plot, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheHits = hits

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cache_hits", hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Trace samples the curve described by the options.
func (r *Runner) Trace(opts Options) (curve.Series, error) {
	series, err := opts.Rose().Trace(opts.Samples)
	if err != nil {
		return curve.Series{}, errors.Wrap(errors.ErrCodeInvalidCurve, err, "trace curve")
	}
	return series, nil
}

// BuildPlot computes the polar surface geometry for a series.
func (r *Runner) BuildPlot(series curve.Series, opts Options) polar.Plot {
	return polar.Build(series, opts.Width, opts.Height, polar.WithTitle(opts.Title))
}

// Render generates all requested formats for a plot. Converted formats
// (PDF, PNG) are served from the artifact cache when the identical SVG has
// been converted before. Returns the artifacts and the cache hit count.
func (r *Runner) Render(ctx context.Context, p polar.Plot, opts Options) (map[string][]byte, int, error) {
	var svgOpts []sink.SVGOption
	if opts.NoGrid {
		svgOpts = append(svgOpts, sink.WithoutGrid(), sink.WithoutLabels())
	}
	svg := sink.RenderSVG(p, svgOpts...)

	artifacts := make(map[string][]byte)
	hits := 0

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatJSON:
			data, err = sink.RenderJSON(p)
		case FormatPDF:
			var hit bool
			data, hit, err = r.convert(ctx, svg, format, 0, func() ([]byte, error) {
				return sink.RenderPDF(p, sink.WithPDFSVGOptions(svgOpts...))
			})
			if hit {
				hits++
			}
		case FormatPNG:
			var hit bool
			data, hit, err = r.convert(ctx, svg, format, opts.PNGScale, func() ([]byte, error) {
				return sink.RenderPNG(p, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.PNGScale))
			})
			if hit {
				hits++
			}
		default:
			return nil, 0, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, hits, nil
}

// convert runs an SVG format conversion through the artifact cache.
func (r *Runner) convert(ctx context.Context, svg []byte, format string, scale float64, fn func() ([]byte, error)) ([]byte, bool, error) {
	key := cache.ArtifactKey(svg, format, scale)

	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := fn()
	if err != nil {
		return nil, false, err
	}

	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	if err := r.Cache.Set(ctx, key, data, artifactTTL); err != nil {
		// Cache write failures degrade to uncached operation.
		r.Logger.Debug("artifact cache write failed", "format", format, "err", err)
	}
	return data, false, nil
}
