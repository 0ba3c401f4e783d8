package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trackhub/pkg/buildinfo"
)

const (
	defaultAddr     = "localhost:8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command for exposing a hub over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a rendered hub directory over HTTP",
		Long: `Serve a rendered hub directory over HTTP.

The genome browser fetches hub.txt and follows the relative paths in it, so
the whole directory including data files is served. Byte-range requests are
supported, which the browser needs for bam, bigWig and bigBed files.

Point the browser's "My Hubs" page at http://<addr>/hub.txt. The server must
be reachable from the browser's host; for the public UCSC site that means a
public address.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return c.runServe(cmd.Context(), dir, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", defaultAddr, "listen address")

	return cmd
}

// newHubRouter returns a router serving the files under dir of fs.
func newHubRouter(fs afero.Fs, dir string, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(allowBrowser)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(buildinfo.UserAgent() + "\n"))
	})

	files := http.FileServer(afero.NewHttpFs(fs).Dir(dir))
	r.Handle("/*", files)
	return r
}

// allowBrowser lets browser-based genome viewers fetch hub files across
// origins.
func allowBrowser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
		w.Header().Set("Server", buildinfo.UserAgent())
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"range", r.Header.Get("Range"),
				"took", time.Since(start).Round(time.Microsecond))
		})
	}
}

func (c *CLI) runServe(ctx context.Context, dir, addr string) error {
	logger := loggerFromContext(ctx)

	ok, err := afero.Exists(c.fs, filepath.Join(dir, "hub.txt"))
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !ok {
		printWarning("%s has no hub.txt; run 'build' first", dir)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newHubRouter(c.fs, dir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %s", StyleHighlight.Render(dir))
	printKeyValue("Hub URL", StyleLink.Render("http://"+ln.Addr().String()+"/hub.txt"))
	printDetail("Press Ctrl+C to stop")

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
