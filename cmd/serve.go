package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/memoprint/memoprint/internal/config"
	"github.com/memoprint/memoprint/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the memoprint web server.
The HTTP API backs the interactive front end: project management, photo
upload, crop adjustments, thumbnails and PDF export.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags, falling back
// to the environment-derived config.
func resolveServeHostPort(cmd *cobra.Command, cfg *config.Config) (string, int) {
	host := cfg.Web.Host
	port := cfg.Web.Port
	if cmd.Flags().Changed("host") {
		host = mustGetString(cmd, "host")
	}
	if cmd.Flags().Changed("port") {
		port = mustGetInt(cmd, "port")
	}
	return host, port
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.Database.URL != "" {
		fmt.Println("Using PostgreSQL project storage")
	} else {
		fmt.Printf("Using filesystem project storage at %s\n", cfg.Storage.DataDir)
	}

	host, port := resolveServeHostPort(cmd, cfg)
	server := web.NewServer(store, host, port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting memoprint on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
