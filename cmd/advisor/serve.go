package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/admissions-advisor/internal/config"
	"github.com/jonathan/admissions-advisor/internal/logger"
	"github.com/jonathan/admissions-advisor/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay and recommendation HTTP server",
	Long: `Start an HTTP server that relays /api/qwen to DashScope with the server-held
API key and serves /api/recommend, /health and /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides ADVISOR_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		APIKey:       cfg.DashScopeAPIKey,
		DashScopeURL: cfg.DashScopeURL,
		Model:        cfg.Model,
		RelayURL:     cfg.RelayURL,
		RateLimit:    cfg.RateLimit,
		Logger:       log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("advisor configured",
		zap.Int("port", cfg.Port),
		zap.String("model", cfg.Model),
		zap.Bool("rate_limit", cfg.RateLimit != nil && cfg.RateLimit.Enabled),
	)
	return srv.Start(ctx)
}

// loadServeConfig loads and checks the configuration for serve. The --port flag
// wins over the environment when given.
func loadServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("port") {
		// A derived loopback relay URL follows the port.
		if cfg.RelayURL == loopbackRelayURL(cfg.Port) {
			cfg.RelayURL = loopbackRelayURL(servePort)
		}
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.RequireDashScopeKey(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loopbackRelayURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d/api/qwen", port)
}
