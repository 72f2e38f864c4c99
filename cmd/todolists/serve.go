package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/todolists"
	"github.com/aretw0/todolists/internal/presentation/tui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Starts the todo lists web server. Stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, map[string]string{
			"addr":           "addr",
			"session-secret": "session_secret",
		})
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		if cfg.ConfigFile != "" {
			logger.Info("Loaded config", "file", cfg.ConfigFile)
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		app, err := todolists.New(cfg, todolists.WithLogger(logger), todolists.WithRegistry(reg))
		if err != nil {
			return err
		}
		defer app.Close()

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: app.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
				tui.PrintBanner(cmd.OutOrStdout(), todolists.Version)
			}
			logger.Info("Starting server", "addr", srv.Addr, "store", cfg.Store)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", cfg.ShutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("failed to close server: %w", err)
				}
			}
			logger.Info("Server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":4567", "Address to listen on")
	serveCmd.Flags().String("session-secret", "", "HMAC key for session cookies")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the startup banner")
}
