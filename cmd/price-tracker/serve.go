package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/geniass/price-tracker/pkg/web"
)

const shutdownTimeout = 5 * time.Second

var (
	listenAddr string
	pathPrefix string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the price checker web page",
	Long: `Serves the price checker page. Submitting the form checks the price of the
entered URL against the configured endpoint and renders the result.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("listen") {
			cfg.Listen = listenAddr
		}
		if cmd.Flags().Changed("path-prefix") {
			cfg.PathPrefix = pathPrefix
		}
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "address to listen on (default from config, :8080)")
	serveCmd.Flags().StringVar(&pathPrefix, "path-prefix", "", "prefix page link URLs (in case pages are hosted at a subpath); should start with '/'")
}

func serve(ctx context.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           web.NewServer(client, web.BaseContext{PathPrefix: cfg.PathPrefix}, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", zap.String("addr", cfg.Listen), zap.String("endpoint", cfg.Endpoint))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
