// ABOUTME: Entry point for the orderdesk order-intake bot
// ABOUTME: Wires catalog, ledger, session store, engine, and Matrix bridge together

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"github.com/workee/orderdesk/internal/bridge"
	"github.com/workee/orderdesk/internal/catalog"
	"github.com/workee/orderdesk/internal/config"
	"github.com/workee/orderdesk/internal/engine"
	"github.com/workee/orderdesk/internal/session"
	"github.com/workee/orderdesk/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
              _           _           _
  ___  _ __ __| | ___ _ __ __| | ___  ___| | __
 / _ \| '__/ _' |/ _ \ '__/ _' |/ _ \/ __| |/ /
| (_) | | | (_| |  __/ | | (_| |  __/\__ \   <
 \___/|_|  \__,_|\___|_|  \__,_|\___||___/_|\_\
`

// getConfigPath returns the path to the orderdesk config file.
// Priority: ORDERDESK_CONFIG env var > XDG_CONFIG_HOME/orderdesk/config.toml > ~/.config/orderdesk/config.toml
func getConfigPath() string {
	if envPath := os.Getenv("ORDERDESK_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "orderdesk", "config.toml")
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config from %s: %w", configPath, err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Version:    %s\n", version)
	green.Print("    ▶ ")
	fmt.Printf("Config:     %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Homeserver: %s\n", cfg.Matrix.Homeserver)
	green.Print("    ▶ ")
	fmt.Printf("Catalog:    %s\n", cfg.Catalog.Path)
	green.Print("    ▶ ")
	fmt.Printf("Ledger:     %s\n", cfg.Ledger.Path)
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ledger, err := store.NewSQLiteLedger(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer ledger.Close()

	products := catalog.NewFileCatalog(cfg.Catalog.Path, cfg.Catalog.Refresh)

	// Fail fast on an unreadable catalog rather than at the first /shop.
	if _, err := products.ListProducts(ctx); err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	sessions := session.NewStore(cfg.Session.Timeout)
	defer sessions.Close()

	// The operator notifier shares the bridge's Matrix client, so the
	// bridge is built first and the engine wired in afterwards.
	b, err := bridge.NewBridge(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating bridge: %w", err)
	}
	notifier := bridge.NewOperatorNotifier(b.Client(), cfg.Operator.Room, logger)
	b.SetEngine(engine.New(products, ledger, notifier, sessions, logger))

	logger.Info("starting orderdesk", "version", version)
	return b.Run(ctx)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var logLevel slog.Level
	switch cfg.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
