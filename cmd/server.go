package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-signpdf/config"
	"go-signpdf/internal/logging"
	"go-signpdf/internal/server"
)

// serverCmd starts the signing API server.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the PDF signing API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()

		log, err := logging.New(cfg.Env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()

		srv, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			log.Fatal("failed to start server", zap.Error(err))
		}

		janitorCtx, stopJanitor := context.WithCancel(context.Background())
		defer stopJanitor()
		go srv.Janitor(janitorCtx)

		apiServer := srv.HTTPServer()

		// Create a done channel to signal when the shutdown is complete
		done := make(chan bool, 1)
		go gracefulShutdown(apiServer, srv, log, done)

		log.Info("starting server", zap.String("addr", apiServer.Addr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server error", zap.Error(err))
		}

		// Wait for the graceful shutdown to complete
		<-done
		log.Info("graceful shutdown complete")
	},
}

func gracefulShutdown(apiServer *http.Server, srv *server.Server, log *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if err := srv.Close(); err != nil {
		log.Error("failed to close server", zap.Error(err))
	}

	done <- true
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
