package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gemstrategy/backend/internal/api"
	"github.com/gemstrategy/backend/internal/api/handlers"
	"github.com/gemstrategy/backend/internal/scheduler"
	"github.com/gemstrategy/backend/internal/strategy"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation API server",
	Long: `Starts the HTTP API server and the cache warming scheduler.

Endpoints:
  GET  /health                    - Health check
  GET  /api/recommendation        - Evaluate the strategy
  GET  /api/universe              - List configured instruments
  GET  /api/strategy/parameters   - Describe the strategy

Example:
  go run ./cmd/gem serve
  go run ./cmd/gem serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}

	if servePort != "" {
		p.cfg.Port = servePort
	}

	log := p.logger
	tracker := strategy.NewTracker()

	strategyHandler := handlers.NewStrategyHandler(
		p.engine, p.universe, tracker, p.cfg.Strategy.LookbackMonths, log)
	healthHandler := handlers.NewHealthHandler(tracker, p.cache)

	router := api.NewRouter(strategyHandler, healthHandler, log)
	server := api.New(p.cfg, log, router)

	sched := scheduler.New(log)
	warmJob := scheduler.NewWarmJob(p.engine, tracker, p.cfg.WarmSchedule)
	if err := sched.AddJob(warmJob); err != nil {
		return fmt.Errorf("schedule warm job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", p.cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
