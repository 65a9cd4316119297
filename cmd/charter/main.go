package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drumcharter/internal/analyzer"
	"drumcharter/internal/config"
	"drumcharter/internal/logger"
	"drumcharter/internal/processor"
	"drumcharter/internal/server"
	"drumcharter/internal/watcher"
)

func main() {
	ctx := context.Background()

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "AI Drum Charter")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Configured API keys: %d", len(cfg.Gemini.APIKeys))
	log.Info(ctx, "Logo: %s", cfg.Chart.LogoPath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := analyzer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	srv := server.New(cfg, a, log)

	errChan := make(chan error, 2)
	go func() {
		if err := srv.Run(ctx); err != nil {
			errChan <- fmt.Errorf("server: %w", err)
		}
	}()

	var w watcher.Watcher
	if cfg.Watch.Enabled {
		if err := ensureDirectories(cfg); err != nil {
			log.Error(ctx, "Failed to create directories: %v", err)
			os.Exit(1)
		}

		proc := processor.New(cfg, a, log)
		w, err = watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Watch.MaxConcurrent)
		if err != nil {
			log.Error(ctx, "Failed to create watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				errChan <- fmt.Errorf("watcher: %w", err)
			}
		}()
		log.Info(ctx, "Batch mode on, watching: %s", cfg.Paths.Input)
	}

	log.Info(ctx, "Web UI: http://%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Info(ctx, "Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "Server shutdown: %v", err)
	}

	log.Info(ctx, "Drum Charter stopped")
}

// ensureDirectories creates the batch-mode directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
