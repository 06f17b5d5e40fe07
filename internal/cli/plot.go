package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roseplot/pkg/curve"
	rperrors "github.com/matzehuels/roseplot/pkg/errors"
	"github.com/matzehuels/roseplot/pkg/pipeline"
)

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	output  string  // output file path (or base path for multiple formats)
	samples int     // curve samples over [0, 2π]
	petals  float64 // angular frequency k
	base    float64 // radial offset
	title   string  // plot title
	width   float64 // frame width in pixels
	height  float64 // frame height in pixels
	noGrid  bool    // hide grid rings and labels
	noView  bool    // skip the interactive viewer
	noCache bool    // disable artifact caching
}

// plotCommand creates the plot command. With no arguments and no flags it
// reproduces the stock figure: r = 1 + sin(4θ), 100 samples, titled
// "Line Plot on Polar Axis", saved to hw1_plot.pdf and then shown in the
// terminal viewer. The file is always written before the viewer opens.
func (c *CLI) plotCommand() *cobra.Command {
	var formatsStr string
	opts := plotOpts{
		samples: pipeline.DefaultSamples,
		petals:  pipeline.DefaultPetals,
		base:    pipeline.DefaultBase,
		title:   pipeline.DefaultTitle,
		width:   pipeline.DefaultWidth,
		height:  pipeline.DefaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "plot [curve.toml]",
		Short: "Render a rose curve and save it to a file",
		Long: `Render a rose curve r = base + sin(k·θ) as a polar line plot.

The figure is saved first and then opened in the interactive terminal
viewer. An optional TOML manifest can describe the curve; explicit flags
override manifest values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest := ""
			if len(args) == 1 {
				manifest = args[0]
			}
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			pOpts, err := buildOptions(cmd, &opts, formats, manifest)
			if err != nil {
				return err
			}
			return c.runPlot(cmd.Context(), pOpts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or '-' for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): pdf (default), svg, png, json (comma-separated)")
	cmd.Flags().IntVar(&opts.samples, "samples", opts.samples, "number of curve samples")
	cmd.Flags().Float64Var(&opts.petals, "petals", opts.petals, "angular frequency k of the rose curve")
	cmd.Flags().Float64Var(&opts.base, "base", opts.base, "radial offset of the rose curve")
	cmd.Flags().StringVar(&opts.title, "title", opts.title, "plot title")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().BoolVar(&opts.noGrid, "no-grid", false, "hide grid rings and labels")
	cmd.Flags().BoolVar(&opts.noView, "no-view", false, "skip the interactive viewer")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

// buildOptions assembles pipeline options from defaults, an optional
// manifest, and explicit flags. Precedence: flags > manifest > defaults.
func buildOptions(cmd *cobra.Command, opts *plotOpts, formats []string, manifestPath string) (pipeline.Options, error) {
	pOpts := pipeline.Options{Formats: formats, NoGrid: opts.noGrid}
	pOpts.SetDefaults()

	if manifestPath != "" {
		m, err := curve.LoadManifest(manifestPath)
		if err != nil {
			return pipeline.Options{}, rperrors.Wrap(rperrors.ErrCodeInvalidManifest, err, "load %s", manifestPath)
		}
		pOpts.ApplyManifest(m)
	}

	// Explicit flags win over the manifest.
	if cmd.Flags().Changed("samples") {
		pOpts.Samples = opts.samples
	}
	if cmd.Flags().Changed("petals") {
		pOpts.Petals = opts.petals
	}
	if cmd.Flags().Changed("base") {
		pOpts.Base = opts.base
	}
	if cmd.Flags().Changed("title") {
		pOpts.Title = opts.title
	}
	if cmd.Flags().Changed("width") {
		pOpts.Width = opts.width
	}
	if cmd.Flags().Changed("height") {
		pOpts.Height = opts.height
	}

	return pOpts, nil
}

// runPlot executes the pipeline, persists the artifacts, and then opens
// the interactive viewer. Persisting strictly precedes viewing, so the
// written file always reflects the rendered figure.
func (c *CLI) runPlot(ctx context.Context, pOpts pipeline.Options, opts *plotOpts) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Plotting r = %g + sin(%g·θ) with %d samples", pOpts.Base, pOpts.Petals, pOpts.Samples)

	runner := c.newRunner(opts.noCache)
	defer runner.Close()
	runner.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering plot...")
	spinner.Start()

	result, err := runner.Execute(ctx, pOpts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError(rperrors.UserMessage(err))
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(result.Artifacts, pOpts.Formats, opts.output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(result.Artifacts)))
	printStats(result.Plot.Series.Len(), result.Plot.RMax, result.CacheHits > 0)

	if opts.noView || opts.output == "-" {
		return nil
	}
	if !isInteractive() {
		logger.Debug("not a terminal, skipping viewer")
		return nil
	}
	return runViewer(ctx, result.Plot.Series, pOpts.Title)
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["pdf"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPDF}
	}
	return strings.Split(s, ",")
}

// outputPath derives the artifact path for a format. A single format uses
// the output flag directly (or the stock name); multiple formats treat the
// output as a base path.
func outputPath(output, format string, multi bool) string {
	if !multi {
		if output != "" {
			return output
		}
		if format == pipeline.FormatPDF {
			return defaultOutput
		}
		return strings.TrimSuffix(defaultOutput, filepath.Ext(defaultOutput)) + "." + format
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(defaultOutput, filepath.Ext(defaultOutput))
	}
	ext := filepath.Ext(base)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}

// writeArtifacts persists every rendered format. Failure to create or
// write any file aborts immediately with a WRITE_ERROR.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) error {
	multi := len(formats) > 1

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return rperrors.New(rperrors.ErrCodeInternal, "missing artifact for %s", format)
		}

		if output == "-" {
			if multi {
				return rperrors.New(rperrors.ErrCodeInvalidPath, "stdout output supports a single format")
			}
			_, err := os.Stdout.Write(data)
			return err
		}

		path := outputPath(output, format, multi)
		if err := writeFile(path, data); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// writeFile writes data to path, overwriting any existing file.
func writeFile(path string, data []byte) error {
	out, err := os.Create(path)
	if err != nil {
		return rperrors.Wrap(rperrors.ErrCodeWrite, err, "create %s", path)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return rperrors.Wrap(rperrors.ErrCodeWrite, err, "write %s", path)
	}
	return nil
}

// isInteractive reports whether stdout is attached to a terminal.
// The viewer is skipped in pipelines and headless environments.
func isInteractive() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
