package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/paycast/paycast/internal/config"
	"github.com/paycast/paycast/internal/logger"
	"github.com/paycast/paycast/internal/pipeline"
	"github.com/paycast/paycast/internal/predictor"
	"github.com/paycast/paycast/internal/server"
	"github.com/paycast/paycast/internal/storage"
	"github.com/paycast/paycast/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the paycast server",
	Long:  `Start the paycast server in foreground mode.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault(cfgFile)

	// Override bind address if specified via flag
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	log.Info("paycast starting",
		"version", Version,
		"config", cfgFile,
	)

	jobs, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open job database: %w", err)
	}
	defer jobs.Close()

	pipe, err := pipeline.New(pipeline.Config{
		Regressor: pipeline.Type(cfg.Predictor.Regressor),
		Tree: pipeline.TreeParams{
			MaxDepth:       cfg.Predictor.Tree.MaxDepth,
			MinLeafSamples: cfg.Predictor.Tree.MinLeafSamples,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	models := storage.NewModelFile(cfg.Persistence.DataDir, log)
	svc := predictor.New(
		jobs,
		pipe,
		storage.NewStateFile(cfg.Persistence.DataDir, log),
		models,
		predictor.RetrainPolicy{StaleThreshold: cfg.Predictor.StaleThreshold},
		log,
	)

	// Write PID file if configured
	if cfg.Server.PIDFile != "" {
		if err := writePIDFile(cfg.Server.PIDFile); err != nil {
			log.Warn("failed to write PID file", "error", err)
		} else {
			defer os.Remove(cfg.Server.PIDFile)
		}
	}

	srv := server.New(cfg, svc, models, log, Version)

	// Signal channels
	sighupCh := make(chan os.Signal, 1)
	sigCh := make(chan os.Signal, 1)
	shutdownDone := make(chan struct{})

	signal.Notify(sighupCh, syscall.SIGHUP)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Handle SIGHUP for hot-reload
	go func() {
		for {
			select {
			case <-sighupCh:
				log.Info("SIGHUP received, reloading configuration")

				newCfg := config.LoadOrDefault(cfgFile)
				if err := newCfg.Validate(); err != nil {
					log.Error("invalid configuration, reload aborted", "error", err)
					continue
				}

				srv.ReloadConfig(newCfg)
			case <-shutdownDone:
				return
			}
		}
	}()

	// Handle shutdown signals
	go func() {
		<-sigCh

		log.Info("shutdown signal received")

		signal.Stop(sighupCh)
		signal.Stop(sigCh)
		close(shutdownDone)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", "error", err)
		}
	}()

	log.Info("paycast ready", "addr", srv.Addr())

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("paycast stopped")
	return nil
}

func writePIDFile(path string) error {
	pid := os.Getpid()
	return os.WriteFile(path, []byte(fmt.Sprintf("%d", pid)), 0644)
}
