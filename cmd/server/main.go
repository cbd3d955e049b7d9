package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"pizza-bot/infrastructure/http/server"
	"pizza-bot/internal"
	"pizza-bot/observability"
	"pizza-bot/services"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the catalog, the responder and the HTTP server, and blocks until
// a signal arrives or the listener fails. Deferred cleanups run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Catalog, loaded once
	catalog, err := internal.LoadCatalog(ctx, internal.CatalogSettings{
		Source:         config.CatalogSource,
		Path:           config.CatalogPath,
		BadgerFilepath: config.BadgerFilepath,
	}, internal.ParseRequiredIntents(config.RequiredIntents), log)
	if err != nil {
		return exitConfig, err
	}

	// 3. Responder & monitoring
	var picker services.Picker
	if config.ResponseSeed != nil {
		picker = services.NewSeededPicker(uint64(*config.ResponseSeed))
		log.Info("Deterministic responses enabled", "seed", *config.ResponseSeed)
	}
	responder := services.NewDefaultResponder(log, catalog, picker)

	monitoring := observability.NewMonitoringManager(log)
	go monitoring.Listen(ctx, config.MetricInterval)

	// 4. HTTP server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.NewChatServer(log, responder, monitoring, config.MaxMessageLength).Handler(),
		ReadHeaderTimeout: config.ReadTimeout,
		ReadTimeout:       config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 5. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return exitRuntime, err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, fmt.Errorf("http shutdown failed: %w", err)
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}
