package main

//
//  @title           pricemachine API
//  @version         1.0
//  @description     Price list aggregation and search service.
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/pricemachine
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        prices
//  @tag.description Product search and report
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/pricemachine/config"
	_ "github.com/guttosm/pricemachine/docs" // swagger docs
	"github.com/guttosm/pricemachine/internal/app"
	"github.com/guttosm/pricemachine/internal/console"
	"github.com/guttosm/pricemachine/internal/ingestion"
	"github.com/guttosm/pricemachine/internal/logger"
	"github.com/guttosm/pricemachine/internal/service"
	"github.com/guttosm/pricemachine/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	modeInteractive = "interactive"
	modeAPI         = "api"
	modeExport      = "export"

	shutdownTimeout = 10 * time.Second
)

// options are the resolved command-line settings.
type options struct {
	mode string
	dir  string
	out  string
	port string
}

// newServer builds the HTTP server for api mode.
func newServer(router http.Handler, port string) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve runs the HTTP server until ctx is cancelled (SIGINT/SIGTERM in
// production) or the listener fails, then shuts it down gracefully.
func serve(ctx context.Context, router http.Handler, port string) error {
	server := newServer(router, port)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.L().Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.L().Info().Msg("server exited gracefully")
		return nil
	})

	return g.Wait()
}

// run ingests opts.dir and then serves the selected mode.
// Ingestion diagnostics are printed to out before anything else.
func run(ctx context.Context, cfg config.Config, opts options, in io.Reader, out io.Writer) error {
	switch opts.mode {
	case modeInteractive, modeAPI, modeExport:
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}

	store := storage.NewMemoryStore()
	rep, err := ingestion.ProcessDirectory(ctx, opts.dir, store, ingestion.Options{
		NameFragment: cfg.Ingest.NameFragment,
		Extension:    cfg.Ingest.Extension,
	})
	if rep != nil {
		console.PrintProblems(out, rep.Problems)
	}
	if err != nil {
		return fmt.Errorf("ingestion: %w", err)
	}

	svc := service.NewPriceService(store)

	sink, err := app.OpenReportSink(cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	exporter := app.NewExporter(svc, sink.Repo)

	switch opts.mode {
	case modeExport:
		if err := exporter.Export(ctx, opts.out); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(out, "Данные экспортированы в '%s'.\n", opts.out)
		return nil
	case modeAPI:
		return serve(ctx, app.InitializeApp(svc, sink), opts.port)
	default:
		return console.NewDriver(svc, exporter.Func(ctx), opts.out).Run(ctx, in, out)
	}
}

// main is the entry point of the pricemachine application.
//
// Modes (selected via --mode flag):
//   - interactive: search from the terminal, optionally export on exit.
//   - api:         serve search and report over HTTP.
//   - export:      write the report and exit.
//
// Flags:
//   - --mode: Execution mode. Default: "interactive".
//   - --dir:  Directory with price lists. Defaults to INGEST_DIR.
//   - --out:  HTML report path. Defaults to EXPORT_PATH.
//   - --port: Port for API mode. Defaults to SERVER_PORT.
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	logger.Init()

	opts := options{}
	flag.StringVar(&opts.mode, "mode", modeInteractive, "Mode: interactive, api or export")
	flag.StringVar(&opts.dir, "dir", config.AppConfig.Ingest.Dir, "Directory with price list files")
	flag.StringVar(&opts.out, "out", config.AppConfig.Export.Path, "HTML report path")
	flag.StringVar(&opts.port, "port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.AppConfig, opts, os.Stdin, os.Stdout); err != nil {
		stop()
		logger.L().Fatal().Err(err).Str("mode", opts.mode).Msg("pricemachine failed")
	}
}
