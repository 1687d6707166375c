package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"evalgo.org/vlanreg/internal/api"
	"evalgo.org/vlanreg/internal/config"
	"evalgo.org/vlanreg/internal/logging"
	"evalgo.org/vlanreg/internal/registry"
)

var (
	serverHost string
	serverPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  `Start the VLAN registry HTTP API server`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&serverHost, "host", "", "bind address (overrides config)")
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 0, "listen port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := registry.New(registry.WithBounds(cfg.Registry.MinID, cfg.Registry.MaxID))

	// Create API server
	server := api.New(cfg, reg, logger)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-errChan:
		logger.Error("server stopped", zap.Error(err))
		return fmt.Errorf("server error: %w", err)
	}
}
