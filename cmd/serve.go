package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"kanban-board.com/kanban-board/internal/auth"
	config "kanban-board.com/kanban-board/internal/configs"
	"kanban-board.com/kanban-board/internal/events"
	httpapi "kanban-board.com/kanban-board/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the kanban HTTP API and the websocket event stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		verifier, err := auth.NewVerifier(cfg.Auth)
		if err != nil {
			return err
		}
		defer verifier.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var wg sync.WaitGroup
		hub := events.NewHub(cfg.WSMaxConnPerUser, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Run(ctx)
		}()

		var notifier events.Notifier = hub
		if cfg.Redis.Enabled {
			client, err := config.NewRedisClient(cfg.Redis.Addr)
			if err != nil {
				return err
			}
			defer client.Close()

			relay := events.NewRedisRelay(client, cfg.Redis.EventsChannel, hub, logger)
			notifier = relay
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := relay.Run(ctx); err != nil {
					logger.WithError(err).Error("event relay stopped")
				}
			}()
			logger.WithField("channel", cfg.Redis.EventsChannel).Info("redis event relay enabled")
		}

		publisher := events.NewPublisher(notifier, logger)
		h := httpapi.NewHandler(newServices(cfg, db, publisher), hub, verifier, logger)
		e := httpapi.NewServer(h, httpapi.ServerOptions{
			AllowedOrigins:     cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimit,
		}, logger)

		go func() {
			logger.WithField("addr", cfg.AppURL).Info("HTTP server listening")
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("HTTP shutdown incomplete")
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-shutdownCtx.Done():
			logger.Warn("event loops did not stop in time")
		}

		logger.Info("HTTP server and event hub shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
