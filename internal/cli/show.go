package cli

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/observability"
	"github.com/matzehuels/treeplot/pkg/pipeline"
	"github.com/matzehuels/treeplot/pkg/tree"
)

const (
	defaultAddr = "127.0.0.1:8050"

	// requestIDHeader carries the per-request ID back to the client.
	requestIDHeader = "X-Request-Id"
)

// showOpts holds the command-line flags for the show command.
type showOpts struct {
	src  sourceFlags
	plot plotFlags
	addr string
	open bool
}

// showCommand creates the show command, which serves the plot locally.
func (c *CLI) showCommand() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Serve the plot on a local web page",
		Long: `Show starts a local HTTP server with the plot:

  /            HTML page with the SVG plot
  /plot.svg    the plot
  /graph.json  the graph data

Every request fetches the tree again, so edits to the source show up on
reload. The query parameters palette, overflow and type override the flags
for one request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd, &opts)
		},
	}

	opts.src.register(cmd)
	opts.plot.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the page in the default browser")

	return cmd
}

func (c *CLI) runShow(cmd *cobra.Command, opts *showOpts) error {
	ctx := cmd.Context()

	popts := opts.plot.options(cmd, c.config)
	popts.Logger = c.Logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spec := opts.src.spec(c.config)
	src, err := c.openSource(ctx, spec, opts.src.format)
	if err != nil {
		return err
	}
	defer src.Close()

	v := &viewer{
		runner: pipeline.NewRunner(nil, nil, c.Logger),
		src:    src,
		opts:   popts,
		title:  spec,
		logger: c.Logger,
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.addr, err)
	}
	pageURL := "http://" + ln.Addr().String() + "/"

	srv := &http.Server{
		Handler:           v.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	printSuccess("Serving %s", StyleLink.Render(pageURL))
	printDetail("Press Ctrl+C to stop")
	if opts.open {
		if err := openBrowser(pageURL); err != nil {
			printWarning("Could not open browser: %v", err)
		}
	}

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		printInfo("Server stopped")
		return nil
	}
}

// =============================================================================
// Viewer - HTTP handlers
// =============================================================================

// viewer serves the plot for one source.
type viewer struct {
	runner *pipeline.Runner
	src    tree.Source
	opts   pipeline.Options
	title  string
	logger *log.Logger
}

func (v *viewer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	r.Get("/", v.handlePage)
	r.Get("/plot.svg", v.handleArtifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/graph.json", v.handleArtifact(pipeline.FormatJSON, "application/json"))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

// requestID tags each request with a UUID and reports it to the server
// hooks.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		hooks := observability.Server()
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set(requestIDHeader, id)
		hooks.OnRequest(r.Context(), id, r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), id, r.Method, r.URL.Path, status, time.Since(start))
	})
}

// run executes the pipeline for one request.
func (v *viewer) run(r *http.Request, formats ...string) (*pipeline.Result, error) {
	opts := v.opts
	opts.Formats = formats
	q := r.URL.Query()
	if p := q.Get("palette"); p != "" {
		opts.Palette = p
	}
	if o := q.Get("overflow"); o != "" {
		opts.Overflow = o
	}
	if t := q.Get("type"); t != "" {
		opts.VizType = t
	}
	return v.runner.Execute(r.Context(), v.src, opts)
}

func (v *viewer) handleArtifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := v.run(r, format)
		if err != nil {
			v.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(res.Artifacts[format])
	}
}

func (v *viewer) handlePage(w http.ResponseWriter, r *http.Request) {
	res, err := v.run(r, pipeline.FormatSVG)
	if err != nil {
		v.writeError(w, err)
		return
	}
	data := pageData{
		Title:   v.title,
		SVG:     template.HTML(res.Artifacts[pipeline.FormatSVG]),
		Nodes:   res.Stats.NodeCount,
		Edges:   res.Stats.EdgeCount,
		Skipped: res.Stats.Skipped,
		DataURL: template.URL("graph.json"),
	}
	if q := r.URL.Query().Encode(); q != "" {
		data.DataURL = template.URL("graph.json?" + q)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, data); err != nil {
		v.logger.Error("render page", "err", err)
	}
}

func (v *viewer) writeError(w http.ResponseWriter, err error) {
	status := perrors.HTTPStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		v.logger.Error("request failed", "err", err)
		msg = perrors.UserMessage(err)
	}
	http.Error(w, msg, status)
}

type pageData struct {
	Title   string
	SVG     template.HTML
	Nodes   int
	Edges   int
	Skipped int
	DataURL template.URL
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>treeplot · {{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #333; }
header { display: flex; gap: 1rem; align-items: baseline; }
.meta { color: #888; font-size: 0.9rem; }
.plot svg { max-width: 100%; height: auto; border: 1px solid #eee; }
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<span class="meta">{{.Nodes}} nodes · {{.Edges}} edges{{if .Skipped}} · {{.Skipped}} not drawn{{end}} · <a href="{{.DataURL}}">graph.json</a></span>
</header>
<div class="plot">{{.SVG}}</div>
</body>
</html>
`))

// openBrowser opens rawURL with the platform's URL handler.
func openBrowser(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
