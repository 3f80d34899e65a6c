// ABOUTME: Cobra command that serves the JSON API over HTTP.
// ABOUTME: Also runs scheduled sync in the background when auto-sync is enabled.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/contentai/internal/api"
	"github.com/2389-research/contentai/internal/generator"
	"github.com/2389-research/contentai/internal/logging"
	"github.com/2389-research/contentai/internal/similar"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Serve the catalog, saved content, generation, history, and analytics
as a JSON API. Stops gracefully on Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr      string
	serveRateLimit int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "Address to listen on")
	serveCmd.Flags().IntVar(&serveRateLimit, "rate-limit", 120, "Requests per minute per client IP (0 disables)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.FromContext(ctx)
	metrics := api.NewMetrics()
	handler := &api.Handler{
		Catalog:   globalCatalog,
		Saved:     globalSaved,
		History:   globalHistory,
		Generator: generator.New(),
		Embedder:  similar.NewHashEmbedder(0),
		Metrics:   metrics,
	}
	svc := &api.Service{
		Addr:              serveAddr,
		Logger:            logger,
		Routes:            api.RegisterRoutes(handler),
		RateLimitRequests: serveRateLimit,
		RateLimitWindow:   time.Minute,
		Metrics:           metrics,
	}
	svc.Init()

	if globalConfig.GitHub.AutoSync && globalConfig.HasSyncTarget() {
		scheduler, err := newScheduler()
		if err != nil {
			return err
		}
		go func() {
			if err := scheduler.Run(ctx); err != nil {
				logging.With(logger).Layer("sync").Op("auto").Err(err).Error("auto-sync stopped")
			}
		}()
	}

	success(cmd.OutOrStdout(), "Serving on http://%s", serveAddr)
	return svc.Run(ctx)
}
