package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hjkrause/alm-engine/internal/api"
	"github.com/hjkrause/alm-engine/internal/api/handlers"
	"github.com/hjkrause/alm-engine/internal/engine"
	"github.com/hjkrause/alm-engine/internal/store"
	"github.com/hjkrause/alm-engine/pkg/database"
)

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Starts the HTTP API exposing stored runs and on-demand projections.

Endpoints:
  GET  /health
  GET  /api/runs
  GET  /api/runs/{id}
  POST /api/projections/run

Example:
  go run ./cmd/alm serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	eng := engine.New(cfg.Engine, log)

	// The store is optional: without a DATABASE_URL the API still serves
	// on-demand projections.
	var repo *store.Repository
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repo = store.NewRepository(db.Pool)
		if err := repo.Migrate(context.Background()); err != nil {
			return err
		}
	} else {
		log.Warn("DATABASE_URL not set; run persistence disabled")
	}

	runHandler := handlers.NewRunHandler(repo, log)
	projHandler := handlers.NewProjectionHandler(eng, repo, log)
	router := api.NewRouter(runHandler, projHandler, log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
