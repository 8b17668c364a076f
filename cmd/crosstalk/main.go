package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"crosstalk/internal/config"
	"crosstalk/internal/history"
	"crosstalk/internal/logger"
	"crosstalk/internal/tui"
)

func main() {
	// Initialize logger
	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Starting crosstalk...")

	// Parse command line arguments
	args := os.Args[1:]

	if len(args) > 0 && args[0] == "schema" {
		// Non-interactive mode: crosstalk schema
		printSchema()
		return
	}

	flags := flag.NewFlagSet("crosstalk", flag.ExitOnError)
	configPath := flags.String("config", "crosstalk.toml", "path to the settings file")
	channel := flags.String("channel", "", "override the configured channel")
	if err := flags.Parse(args); err != nil {
		os.Exit(1)
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *channel != "" {
		settings.Channel = *channel
	}
	logger.Info("Settings loaded: channel=%s input_mode=%s key_persistence=%s",
		settings.Channel, settings.InputMode, settings.KeyPersistence)

	store, err := history.Open(settings.HistoryPath)
	if err != nil {
		log.Fatalf("Failed to open message history: %v", err)
	}
	defer store.Close()

	tui.RunTUI(settings, store)
}

// printSchema writes the settings JSON schema to stdout so external
// tooling can validate config files.
func printSchema() {
	data, err := config.JSONSchema()
	if err != nil {
		log.Fatalf("Failed to generate settings schema: %v", err)
	}
	fmt.Println(string(data))
}
