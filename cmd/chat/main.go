package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"pizza-bot/internal"
	"pizza-bot/services"
	"pizza-bot/tui"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat terminated with error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	_ = godotenv.Load()
	config, err := LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := internal.LoadCatalog(ctx, internal.CatalogSettings{
		Source:         config.CatalogSource,
		Path:           config.CatalogPath,
		BadgerFilepath: config.BadgerFilepath,
	}, internal.ParseRequiredIntents(config.RequiredIntents), log)
	if err != nil {
		return exitConfig, err
	}

	var picker services.Picker
	if config.ResponseSeed != nil {
		picker = services.NewSeededPicker(*config.ResponseSeed)
	}
	responder := services.NewDefaultResponder(log, catalog, picker)

	p := tea.NewProgram(tui.New(responder, config.Title), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return exitRuntime, fmt.Errorf("console error: %w", err)
	}
	return exitOK, nil
}
