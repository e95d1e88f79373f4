package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/hypergraph/internal/adapter/driven/github"
	"github.com/ericfisherdev/hypergraph/internal/adapter/driven/snapshot"
	sqliteadapter "github.com/ericfisherdev/hypergraph/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/hypergraph/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/hypergraph/internal/adapter/driving/web"
	"github.com/ericfisherdev/hypergraph/internal/application"
	"github.com/ericfisherdev/hypergraph/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"org", cfg.Organization,
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"request_timeout", cfg.RequestTimeout,
		"refresh_interval", cfg.RefreshInterval,
		"authenticated", cfg.HasGitHubToken(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Load the fallback snapshot.
	snap, err := snapshot.Load(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	fallback, ok := snap.For(cfg.Organization)
	if !ok {
		slog.Warn("snapshot describes a different organization, starting without fallback data",
			"snapshot_org", snap.Organization,
			"org", cfg.Organization,
		)
	}
	slog.Info("snapshot loaded", "repositories", len(fallback))

	// 6. Wire adapters and start the catalog service.
	lister := githubadapter.NewClient(cfg.RequestTimeout, slog.Default())
	runStore := sqliteadapter.NewFetchRunRepo(db)

	catalogSvc := application.NewCatalogService(
		lister,
		runStore,
		cfg.Organization,
		cfg.GitHubToken,
		fallback,
		cfg.RefreshInterval,
	)
	go catalogSvc.Start(ctx)

	// 7. Register API and GUI routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(catalogSvc, slog.Default()))
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(catalogSvc, slog.Default()))

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	// A manual refresh may walk every page; allow for that in the write timeout.
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      githubadapter.MaxPages*cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	slog.Info("hypergraph started",
		"listen_addr", cfg.ListenAddr,
		"org", cfg.Organization,
	)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
