package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/techmarket/internal/api"
	"github.com/insightdelivered/techmarket/internal/config"
	"github.com/insightdelivered/techmarket/internal/logging"
	"github.com/insightdelivered/techmarket/internal/metrics"
	"github.com/insightdelivered/techmarket/internal/statement"
	"github.com/insightdelivered/techmarket/internal/validator"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
	serveCmd.Flags().String("static", "", "Directory with the registration page assets")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadServeConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log)
	h, err := newHandler(cfg, logger, metrics.New())
	if err != nil {
		return err
	}
	app := api.NewApp(h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr, "statement", h.Endpoint)
		errCh <- app.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// loadServeConfig loads the configuration and applies the serve flags.
func loadServeConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		return cfg, err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if dir, _ := cmd.Flags().GetString("static"); dir != "" {
		cfg.Server.StaticDir = dir
	}
	return cfg, nil
}

// newHandler wires the HTTP handler for cfg. The statement page reads from
// cfg.StatementEndpoint, which follows the final listen address.
func newHandler(cfg config.Config, logger *log.Logger, m *metrics.Metrics) (*api.Handler, error) {
	renderer, err := newRenderer(cfg, logger, m)
	if err != nil {
		return nil, err
	}
	return &api.Handler{
		Version:   Version,
		StaticDir: cfg.Server.StaticDir,
		Endpoint:  cfg.StatementEndpoint(),
		Validator: validator.New(),
		Renderer:  renderer,
		Logger:    logger,
		Metrics:   m,
	}, nil
}

// newRenderer builds the statement renderer described by cfg.
func newRenderer(cfg config.Config, logger *log.Logger, m *metrics.Metrics) (*statement.Renderer, error) {
	format, err := statement.NewFormatter(cfg.Statement.Locale, cfg.Statement.CurrencySymbol)
	if err != nil {
		return nil, err
	}
	threshold, err := cfg.Threshold()
	if err != nil {
		return nil, err
	}
	client := statement.NewClient(&http.Client{Timeout: cfg.Statement.Timeout})
	return statement.NewRenderer(client, format,
		statement.WithHighValueThreshold(threshold),
		statement.WithLogger(logger),
		statement.WithMetrics(m),
	), nil
}
