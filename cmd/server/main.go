package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
	"github.com/LionSR/mcp-apple/internal/mail"
	"github.com/LionSR/mcp-apple/internal/mcp"
	"github.com/LionSR/mcp-apple/internal/osascript"
	"github.com/LionSR/mcp-apple/internal/tools"
)

var (
	version     = "dev"
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mcp-apple version %s\n", version)
		os.Exit(0)
	}

	// Set up logging. Stdout carries the MCP protocol, so logs go to stderr.
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// Set log level
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting Apple Mail MCP server")

	// Wire the osascript bridge and the mail client
	executor := osascript.NewExecutor(logger)
	mailClient := mail.NewClient(cfg, executor, logger)

	// Register tools and create the MCP server
	toolRegistry := tools.NewRegistry(cfg, mailClient, logger)
	server := mcp.NewServer(cfg, toolRegistry, logger)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Run server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
	case err := <-errChan:
		logger.WithError(err).Error("Server error")
		cancel()
	}

	logger.Info("Shutting down Apple Mail MCP server")
}
