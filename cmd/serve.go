package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pixfolio/pixfolio/internal/db/bunx"
	"github.com/pixfolio/pixfolio/internal/repository"
	"github.com/pixfolio/pixfolio/internal/server"
	"github.com/pixfolio/pixfolio/internal/services/sharing"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pixfolio server",
	Long:  `Starts the HTTP server with the gallery API and the public sharing routes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Connect to database
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Printf("Connected to database")

		// Initialize repositories
		userRepo := repository.NewBunUserRepository(db)
		shareRepo := repository.NewBunShareRepository(db)
		sessionRepo := repository.NewBunSessionRepository(db)

		// Initialize the share resolver with the deployment policy
		resolver := sharing.NewResolver(shareRepo, userRepo, cfg.Sharing, cfg.StorageTimeout)

		router := server.NewRouter(server.RouterOptions{
			Public: server.NewPublicHandlers(resolver, sessionRepo, cfg),
			Auth:   server.NewAuthHandlers(userRepo, sessionRepo, cfg),
		})

		// Expired sessions pile up otherwise; sweep them in the background.
		sweepCtx, cancelSweep := context.WithCancel(cmd.Context())
		defer cancelSweep()
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if n, err := sessionRepo.DeleteExpired(sweepCtx); err != nil {
						log.Printf("WARNING: session sweep failed: %v", err)
					} else if n > 0 {
						log.Printf("Removed %d expired sessions", n)
					}
				case <-sweepCtx.Done():
					return
				}
			}
		}()

		// h2c supports HTTP/2 without TLS for local and reverse-proxied setups
		srv := &http.Server{
			Addr:              cfg.ServerAddr,
			Handler:           h2c.NewHandler(router, &http2.Server{}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Listening on %s", cfg.ServerAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case sig := <-stop:
			log.Printf("Received %s, shutting down", sig)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		log.Printf("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
