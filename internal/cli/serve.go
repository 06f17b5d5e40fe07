package cli

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	rperrors "github.com/matzehuels/roseplot/pkg/errors"
	"github.com/matzehuels/roseplot/pkg/pipeline"
)

const serveShutdownTimeout = 5 * time.Second

// indexPage embeds the rendered SVG with download links for the other
// formats.
var indexPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body style="font-family: sans-serif; text-align: center;">
<h1>{{.Title}}</h1>
<object type="image/svg+xml" data="/plot.svg" width="{{.Width}}" height="{{.Height}}"></object>
<p>
<a href="/plot.svg">svg</a> · <a href="/plot.pdf">pdf</a> · <a href="/plot.png">png</a> · <a href="/plot.json">json</a>
</p>
</body>
</html>
`))

// serveCommand creates the serve command: a local HTTP preview server that
// renders the plot on demand.
func (c *CLI) serveCommand() *cobra.Command {
	opts := plotOpts{
		samples: pipeline.DefaultSamples,
		petals:  pipeline.DefaultPetals,
		base:    pipeline.DefaultBase,
		title:   pipeline.DefaultTitle,
		width:   pipeline.DefaultWidth,
		height:  pipeline.DefaultHeight,
	}
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plot over HTTP for browser preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Same precedence as plot: defaults, then explicit flags. An
			// explicit --base 0 or --title "" must survive intact.
			pipeOpts, err := buildOptions(cmd, &opts, nil, "")
			if err != nil {
				return err
			}
			return c.runServe(cmd, addr, pipeOpts, opts.noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().IntVar(&opts.samples, "samples", opts.samples, "number of curve samples")
	cmd.Flags().Float64Var(&opts.petals, "petals", opts.petals, "angular frequency k of the rose curve")
	cmd.Flags().Float64Var(&opts.base, "base", opts.base, "radial offset of the rose curve")
	cmd.Flags().StringVar(&opts.title, "title", opts.title, "plot title")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height in pixels")
	cmd.Flags().BoolVar(&opts.noGrid, "no-grid", false, "hide grid rings and labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, opts pipeline.Options, noCache bool) error {
	ctx := cmd.Context()
	runner := c.newRunner(noCache)
	defer runner.Close()

	// One instance tag per server start. Artifacts for fixed options are
	// deterministic, so the tag doubles as an ETag for every format.
	etag := fmt.Sprintf("%q", uuid.NewString())

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexPage.Execute(w, map[string]any{
			"Title":  opts.Title,
			"Width":  int(opts.Width),
			"Height": int(opts.Height),
		})
	})
	for format, contentType := range map[string]string{
		pipeline.FormatSVG:  "image/svg+xml",
		pipeline.FormatPDF:  "application/pdf",
		pipeline.FormatPNG:  "image/png",
		pipeline.FormatJSON: "application/json",
	} {
		router.Get("/plot."+format, c.plotHandler(runner, opts, format, contentType, etag))
	}

	server := &http.Server{Addr: addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving plot", "addr", "http://"+addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// plotHandler renders one artifact format per request. Rendering is cheap
// and cache-backed, so there is no in-process memoization beyond the
// artifact cache.
func (c *CLI) plotHandler(runner *pipeline.Runner, opts pipeline.Options, format, contentType, etag string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		reqOpts := opts
		reqOpts.Formats = []string{format}
		result, err := runner.Execute(r.Context(), reqOpts)
		if err != nil {
			c.Logger.Error("render failed",
				"format", format,
				"code", rperrors.GetCode(err),
				"error", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("ETag", etag)
		_, _ = w.Write(result.Artifacts[format])
	}
}
