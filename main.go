package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/medicombine-api/combinations"
	"github.com/giygas/medicombine-api/config"
	"github.com/giygas/medicombine-api/handlers"
	"github.com/giygas/medicombine-api/health"
	"github.com/giygas/medicombine-api/interactions"
	"github.com/giygas/medicombine-api/llm"
	"github.com/giygas/medicombine-api/logging"
	"github.com/giygas/medicombine-api/scheduler"
	"github.com/giygas/medicombine-api/server"
	"github.com/giygas/medicombine-api/validation"
	"github.com/joho/godotenv"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// runServer wires every component and blocks until SIGINT/SIGTERM
func runServer() error {
	// A missing .env file is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.InitLogger("logs", level, cfg.LogRetentionWeeks, cfg.MaxLogFileSize)
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()

	validator := validation.NewPatientValidator()
	textGenerator := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, nil)
	generator := combinations.NewGenerator(textGenerator, validator, combinations.Options{
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
	})
	checker := interactions.NewChecker()
	healthChecker := health.NewHealthChecker(cfg.OpenAIModel, cfg.Env)

	handler := handlers.NewHTTPHandler(validator, generator, checker, healthChecker, cfg.GenerationTimeout)
	rateLimiter := server.NewRateLimiter()
	srv := server.NewServer(cfg, handler, rateLimiter)

	maintenance := scheduler.NewScheduler(rateLimiter, logging.CleanupOldLogs)
	if err := maintenance.Start(); err != nil {
		return err
	}
	defer maintenance.Stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logging.Error("Server failed to start", "error", err)
			return err
		}
	case sig := <-quit:
		logging.Info("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
